// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	blobVersion byte = 1
	saltSize         = 16
	keySize          = 32 // AES-256

	// verifierLabel domain-separates the verification digest from anything
	// else computed over the same password.
	verifierLabel = "go-quote-guard/verifier/v1\x00"
)

// Argon2Params are the Argon2id cost parameters used to stretch the master
// password into an encryption key.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultArgon2Params returns the parameters recommended by OWASP (2024):
// 1 iteration, 64 MiB, 4 lanes.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
	}
}

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	params Argon2Params
}

// NewKeyChainService constructs a [KeyChainService]. Zero fields of params
// are replaced with the values from [DefaultArgon2Params].
func NewKeyChainService(params Argon2Params) KeyChainService {
	def := DefaultArgon2Params()
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = def.MemoryKiB
	}
	if params.Threads == 0 {
		params.Threads = def.Threads
	}
	return &keyChainService{params: params}
}

// HashPassword implements [KeyChainService].
func (k *keyChainService) HashPassword(password []byte) string {
	h := sha256.New()
	h.Write([]byte(verifierLabel))
	h.Write(password)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyPassword implements [KeyChainService]. An empty digest never matches.
func (k *keyChainService) VerifyPassword(password []byte, digest string) bool {
	if digest == "" {
		return false
	}
	computed := k.HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// Encrypt implements [KeyChainService]. A fresh salt and nonce are drawn for
// every call, so encrypting the same value twice yields different blobs.
func (k *keyChainService) Encrypt(data any, password []byte) (string, error) {
	// 1. Serialize to JSON
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	defer Wipe(plaintext)

	// 2. Fresh salt, stretched key
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %w", ErrEncrypt, err)
	}
	key := k.deriveKey(password, salt)
	defer Wipe(key)

	gcm, err := newGCM(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncrypt, err)
	}

	// 3. Random nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: generate nonce: %w", ErrEncrypt, err)
	}

	// 4. version ‖ salt is authenticated as additional data
	header := append([]byte{blobVersion}, salt...)
	blob := make([]byte, 0, len(header)+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, header...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, plaintext, header)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [KeyChainService].
func (k *keyChainService) Decrypt(ciphertext string, password []byte, target any) error {
	// 1. Decode base64 blob
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return fmt.Errorf("%w: decode base64: %w", ErrDecrypt, err)
	}

	headerSize := 1 + saltSize
	if len(blob) < headerSize || blob[0] != blobVersion {
		return fmt.Errorf("%w: unsupported blob", ErrDecrypt)
	}
	header, rest := blob[:headerSize], blob[headerSize:]

	// 2. Re-derive the key from the stored salt
	key := k.deriveKey(password, header[1:])
	defer Wipe(key)

	gcm, err := newGCM(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	// 3. Split nonce and ciphertext
	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize+gcm.Overhead() {
		return fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}
	nonce, sealed := rest[:nonceSize], rest[nonceSize:]

	// 4. Decrypt and verify auth tag. A mismatch almost always means a wrong
	// password.
	plaintext, err := gcm.Open(nil, nonce, sealed, header)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	defer Wipe(plaintext)

	// 5. Unmarshal JSON into target
	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("%w: unmarshal data: %w", ErrDecrypt, err)
	}

	return nil
}

func (k *keyChainService) deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, k.params.Time, k.params.MemoryKiB, k.params.Threads, keySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
