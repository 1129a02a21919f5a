package models

import (
	"time"

	"github.com/google/uuid"
)

// Court represents a single bookable playing surface within a complex
type Court struct {
	ID        int64     `json:"id" db:"id"`
	ComplexID int64     `json:"complex_id" db:"complex_id"`
	Name      string    `json:"name" db:"name"`
	Sport     string    `json:"sport" db:"sport"`
	Covered   bool      `json:"covered" db:"covered"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Complex represents a sports facility owning one or more courts
type Complex struct {
	ID        int64     `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
