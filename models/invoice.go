package models

import "time"

// Invoice represents a persisted invoice. Subtotal, TaxAmount, and Total are
// derived from the items and tax rate on every write; they are never accepted
// from the client.
type Invoice struct {
	ID            int           `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	IssueDate     *string       `json:"issue_date"`
	DueDate       *string       `json:"due_date"`
	ClientName    string        `json:"client_name"`
	ClientEmail   string        `json:"client_email"`
	ClientAddress *string       `json:"client_address"`
	TaxRate       float64       `json:"tax_rate"`
	Subtotal      float64       `json:"subtotal"`
	TaxAmount     float64       `json:"tax_amount"`
	Total         float64       `json:"total"`
	Status        string        `json:"status"`
	Notes         *string       `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Items         []InvoiceItem `json:"items,omitempty"`
}

// InvoiceItem is a persisted invoice line item.
type InvoiceItem struct {
	ID          int     `json:"id"`
	InvoiceID   int     `json:"invoice_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// InvoiceItemInput is one line item in an invoice create/update payload.
type InvoiceItemInput struct {
	Description string  `json:"description"`
	Quantity    Numeric `json:"quantity"`
	Price       Numeric `json:"price"`
}

// InvoiceInput is used for creating/updating invoices. Items are replaced
// wholesale on update.
type InvoiceInput struct {
	InvoiceNumber string             `json:"invoice_number"`
	IssueDate     *string            `json:"issue_date"`
	DueDate       *string            `json:"due_date"`
	ClientName    string             `json:"client_name"`
	ClientEmail   string             `json:"client_email"`
	ClientAddress *string            `json:"client_address"`
	TaxRate       Numeric            `json:"tax_rate"`
	Status        string             `json:"status"`
	Notes         *string            `json:"notes"`
	Items         []InvoiceItemInput `json:"items"`
}

func (i *InvoiceInput) Validate() string {
	if i.ClientName == "" {
		return "client_name is required"
	}
	if i.ClientEmail == "" {
		return "client_email is required"
	}
	if len(i.Items) == 0 {
		return "at least one line item is required"
	}
	for _, it := range i.Items {
		if it.Description == "" {
			return "all line items need a description"
		}
		if it.Quantity < 0 {
			return "quantity must be non-negative"
		}
		if it.Price < 0 {
			return "price must be non-negative"
		}
	}
	if i.TaxRate < 0 || i.TaxRate > 100 {
		return "tax_rate must be between 0 and 100"
	}
	switch i.Status {
	case "", "paid", "pending", "overdue":
	default:
		return "status must be one of: paid, pending, overdue"
	}
	if i.Status == "" {
		i.Status = "pending"
	}
	return ""
}
