package crypto

import (
	"unicode/utf8"

	"github.com/MKhiriev/go-quote-guard/models"
)

// PasswordStrength implements [KeyChainService]. One point each for a length
// of at least 8 and at least 12 characters, and one point per character class
// present (lowercase, uppercase, digit, symbol).
func (k *keyChainService) PasswordStrength(password string) models.PasswordStrength {
	return ScorePassword(password)
}

// ScorePassword is the stateless scoring used by [KeyChainService].
func ScorePassword(password string) models.PasswordStrength {
	score := 0

	length := utf8.RuneCountInString(password)
	if length >= 8 {
		score++
	}
	if length >= 12 {
		score++
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	for _, present := range []bool{lower, upper, digit, symbol} {
		if present {
			score++
		}
	}

	category := models.PasswordStrong
	switch {
	case score <= 2:
		category = models.PasswordWeak
	case score <= 4:
		category = models.PasswordMedium
	}

	return models.PasswordStrength{Category: category, Score: score}
}
