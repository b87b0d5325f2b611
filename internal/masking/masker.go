package masking

// Masker renders PII either masked or in full depending on the current
// display preference. It backs every screen that shows customer data.
type Masker struct {
	Masked bool
}

func (m Masker) Phone(v string) string {
	if m.Masked {
		return Phone(v)
	}
	return v
}

func (m Masker) Email(v string) string {
	if m.Masked {
		return Email(v)
	}
	return v
}

func (m Masker) Name(v string) string {
	if m.Masked {
		return Name(v)
	}
	return v
}

func (m Masker) Address(v string) string {
	if m.Masked {
		return Address(v)
	}
	return v
}
