package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups store products.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Product is a storefront item. Price is kept as the decimal string the
// backend sends.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       string     `json:"price"`
	Stock       int        `json:"stock"`
	Image       string     `json:"image,omitempty"`
	Category    *uuid.UUID `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProductInput is the administrator create/update payload.
type ProductInput struct {
	Name        string     `json:"name"                  validate:"required,max=100"`
	Description string     `json:"description,omitempty"`
	Price       string     `json:"price"                 validate:"required,numeric"`
	Stock       int        `json:"stock"                 validate:"gte=0"`
	Category    *uuid.UUID `json:"category,omitempty"`
}
