package crypto

import "github.com/MKhiriev/go-quote-guard/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService performs all local cryptography of the security layer.
// It knows nothing about storage or UI state; it only turns a master password
// into a verification digest and into encryption keys.
//
// Two roles are kept apart:
//
//	digest     = HashPassword(password)                    (verification only)
//	key        = Argon2id(password, salt)                  (one per ciphertext)
//	ciphertext = base64(version ‖ salt ‖ nonce ‖ AES-GCM(key, json(data)))
type KeyChainService interface {
	// HashPassword returns a deterministic hex digest of password. The same
	// password always yields the same digest.
	HashPassword(password []byte) string

	// VerifyPassword recomputes the digest of password and compares it with
	// digest in constant time.
	VerifyPassword(password []byte, digest string) bool

	// Encrypt serializes data to JSON and encrypts it under a key stretched
	// from password. Returns ErrSerialize if data cannot be marshalled and
	// ErrEncrypt for any other failure.
	Encrypt(data any, password []byte) (string, error)

	// Decrypt reverses Encrypt and unmarshals the plaintext into target,
	// which must be a non-nil pointer. Every failure (wrong password,
	// corrupted blob, malformed JSON) is reported as ErrDecrypt.
	Decrypt(ciphertext string, password []byte, target any) error

	// PasswordStrength scores password for UI feedback and the setup gate.
	PasswordStrength(password string) models.PasswordStrength
}
