// Package utils provides small helpers shared by the services and the UI.
package utils

import "github.com/google/uuid"

// IDGenerator produces identifiers for backups and customer records.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator issues time-ordered UUIDv7 strings, so identifiers created
// later sort after earlier ones. If the v7 source fails it falls back to a
// random UUIDv4.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
