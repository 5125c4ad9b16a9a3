package services

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// newID generates an opaque record id. Ids are never reused.
func newID() string {
	return uuid.NewString()
}

// validate checks entity payloads on create/update and import.
var validate = validator.New()
