package models

import "time"

// Client represents a billing customer.
type Client struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Computed fields
	InvoiceCount int     `json:"invoice_count"`
	TotalBilled  float64 `json:"total_billed"`
}

// ClientInput is used for creating/updating clients.
type ClientInput struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

func (c *ClientInput) Validate() string {
	if c.Name == "" {
		return "name is required"
	}
	return ""
}
