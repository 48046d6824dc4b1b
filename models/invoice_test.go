package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInvoiceInput() InvoiceInput {
	return InvoiceInput{
		ClientName:  "Acme Corp",
		ClientEmail: "billing@acme.example",
		TaxRate:     10,
		Items: []InvoiceItemInput{
			{Description: "design work", Quantity: 2, Price: 10},
		},
	}
}

func TestInvoiceInputValidate(t *testing.T) {
	in := validInvoiceInput()
	assert.Empty(t, in.Validate())
	assert.Equal(t, "pending", in.Status, "empty status defaults to pending")
}

func TestInvoiceInputValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvoiceInput)
		want   string
	}{
		{"missing client name", func(i *InvoiceInput) { i.ClientName = "" }, "client_name is required"},
		{"missing client email", func(i *InvoiceInput) { i.ClientEmail = "" }, "client_email is required"},
		{"no items", func(i *InvoiceInput) { i.Items = nil }, "at least one line item is required"},
		{"empty description", func(i *InvoiceInput) { i.Items[0].Description = "" }, "all line items need a description"},
		{"negative quantity", func(i *InvoiceInput) { i.Items[0].Quantity = -1 }, "quantity must be non-negative"},
		{"negative price", func(i *InvoiceInput) { i.Items[0].Price = -5 }, "price must be non-negative"},
		{"tax rate too high", func(i *InvoiceInput) { i.TaxRate = 101 }, "tax_rate must be between 0 and 100"},
		{"negative tax rate", func(i *InvoiceInput) { i.TaxRate = -1 }, "tax_rate must be between 0 and 100"},
		{"bad status", func(i *InvoiceInput) { i.Status = "archived" }, "status must be one of: paid, pending, overdue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInvoiceInput()
			tt.mutate(&in)
			assert.Equal(t, tt.want, in.Validate())
		})
	}
}

func TestClientInputValidate(t *testing.T) {
	c := ClientInput{}
	assert.Equal(t, "name is required", c.Validate())

	c.Name = "Acme Corp"
	assert.Empty(t, c.Validate())
}

func TestProductInputValidate(t *testing.T) {
	p := ProductInput{Name: "Hosting", Price: -1}
	assert.Equal(t, "price must be non-negative", p.Validate())

	p.Price = 25
	assert.Empty(t, p.Validate())

	p.Name = ""
	assert.Equal(t, "name is required", p.Validate())
}
