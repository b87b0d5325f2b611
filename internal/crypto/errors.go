package crypto

import "errors"

var (
	// ErrSerialize is returned when the value passed to Encrypt cannot be
	// marshalled to JSON. Nothing is encrypted in that case.
	ErrSerialize = errors.New("cannot serialize data")

	// ErrEncrypt is returned when cipher setup or random generation fails.
	ErrEncrypt = errors.New("cannot encrypt data")

	// ErrDecrypt is returned by Decrypt for a wrong password, a corrupted or
	// truncated blob, or an undecodable plaintext. The causes are deliberately
	// not distinguished.
	ErrDecrypt = errors.New("could not decrypt")
)
