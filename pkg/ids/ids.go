// Package ids provides opaque unique identifier generation for entities
// created by the services.
package ids

import "github.com/google/uuid"

// Generator produces opaque unique identifiers.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewUUIDGenerator returns a Generator backed by random UUIDs.
func NewUUIDGenerator() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}
