package models

import "github.com/google/uuid"

// Person is a participant in one or more bills.
// People are managed outside the calculator; items only carry references to them.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string `json:"id" validate:"required"`

	// Name is the display name.
	Name string `json:"name"`
}

// NewPerson creates a person with a fresh ID.
func NewPerson(name string) Person {
	return Person{ID: uuid.New().String(), Name: name}
}
