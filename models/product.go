package models

import "time"

// Product represents a billable product or service.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductInput is used for creating/updating products.
type ProductInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       Numeric `json:"price"`
}

func (p *ProductInput) Validate() string {
	if p.Name == "" {
		return "name is required"
	}
	if p.Price < 0 {
		return "price must be non-negative"
	}
	return ""
}
