package checkout

import (
	"errors"
	"strings"
)

var ErrInvalidContact = errors.New("invalid contact details")

// Contact holds the checkout form fields
type Contact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ValidationError lists the contact fields that are missing after trimming
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidContact
}

// Normalized returns the contact with surrounding whitespace removed
func (c Contact) Normalized() Contact {
	return Contact{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

// Validate requires name, phone and address to be non-empty after trimming
func (c Contact) Validate() error {
	n := c.Normalized()
	var missing []string
	if n.Name == "" {
		missing = append(missing, "name")
	}
	if n.Phone == "" {
		missing = append(missing, "phone")
	}
	if n.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func (c Contact) IsZero() bool {
	return c == Contact{}
}
