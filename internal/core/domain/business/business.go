package business

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel error for validation failures.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when a user has no business on record.
var ErrNotFound = errors.New("business not found")

// Business is the contact card shown on the dashboard.
type Business struct {
	OwnerID string `json:"-"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (b Business) Validate() error {
	if b.OwnerID == "" {
		return fmt.Errorf("%w: owner is required", ErrValidation)
	}
	if b.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}
