package invoice

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrLastItem is returned when removing the only remaining line item.
var ErrLastItem = errors.New("an invoice needs at least one line item")

// ErrItemNotFound is returned when an item id does not exist on the draft.
var ErrItemNotFound = errors.New("line item not found")

// Draft is an invoice being composed, not yet persisted. Its derived totals
// are recomputed on every mutation of the items or tax rate and are never set
// directly.
type Draft struct {
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	ClientName    string
	ClientEmail   string
	ClientAddress string
	Items         []LineItem
	TaxRate       float64
	Totals        Totals
	Notes         string
}

// NewNumber generates a display invoice number like INV-2026-042. Not
// guaranteed unique; the persisted record id is the real identifier.
func NewNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%03d", now.Year(), rand.Intn(1000))
}

// NewDraft returns a draft with defaults: a generated invoice number, issue
// date of today, due date 30 days out, and a single empty line item.
func NewDraft(now time.Time) *Draft {
	d := &Draft{
		InvoiceNumber: NewNumber(now),
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, 30),
		Items:         []LineItem{{ID: 1, Quantity: 1}},
	}
	d.recompute()
	return d
}

func (d *Draft) recompute() {
	for i := range d.Items {
		d.Items[i].Total = LineTotal(d.Items[i].Quantity, d.Items[i].Price)
	}
	d.Totals = Compute(d.Items, d.TaxRate)
}

// AddItem appends an empty line item with the next id and returns that id.
// Ids are assigned max+1 so they stay monotonically increasing even after
// removals.
func (d *Draft) AddItem() int {
	next := 0
	for _, it := range d.Items {
		if it.ID > next {
			next = it.ID
		}
	}
	d.Items = append(d.Items, LineItem{ID: next + 1, Quantity: 1})
	d.recompute()
	return next + 1
}

// UpdateItem replaces the description, quantity, and price of the item with
// the given id and recomputes all totals.
func (d *Draft) UpdateItem(id int, description string, quantity, price float64) error {
	for i := range d.Items {
		if d.Items[i].ID == id {
			d.Items[i].Description = description
			d.Items[i].Quantity = quantity
			d.Items[i].Price = price
			d.recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem deletes the item with the given id. Removing the last remaining
// item is rejected with ErrLastItem and leaves the draft unchanged.
func (d *Draft) RemoveItem(id int) error {
	idx := -1
	for i := range d.Items {
		if d.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}
	if len(d.Items) == 1 {
		return ErrLastItem
	}
	d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
	d.recompute()
	return nil
}

// SetTaxRate changes the tax rate percentage and recomputes totals.
func (d *Draft) SetTaxRate(rate float64) {
	d.TaxRate = rate
	d.recompute()
}

// Validate reports the first problem that should block saving or sending the
// draft.
func (d *Draft) Validate() error {
	if d.ClientName == "" {
		return errors.New("client name is required")
	}
	if d.ClientEmail == "" {
		return errors.New("client email is required")
	}
	for _, it := range d.Items {
		if it.Description == "" {
			return errors.New("all line items need a description")
		}
	}
	return nil
}
