// Package invoice holds the invoicing computations: draft totals, draft
// lifecycle rules, and aggregation of persisted invoices into report
// statistics. Everything here is pure; persistence lives in the handlers.
package invoice

// LineItem is one row of an invoice draft.
type LineItem struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"` // quantity × price, maintained by the draft
}

// Totals are the derived monetary fields of an invoice.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

// LineTotal returns quantity × price for a single line item.
func LineTotal(quantity, price float64) float64 {
	return quantity * price
}

// Compute derives subtotal, tax amount, and grand total from a sequence of
// line items and a tax rate percentage. It uses the same multiplication as
// LineTotal, so the subtotal is exactly the sum of the line totals.
func Compute(items []LineItem, taxRate float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Quantity * it.Price
	}
	taxAmount := subtotal * (taxRate / 100)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount,
	}
}
