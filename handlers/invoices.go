package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sidharthv/invoicing/invoice"
	"github.com/sidharthv/invoicing/models"
)

const invoiceSelectQuery = `SELECT id, invoice_number, issue_date, due_date, client_name, client_email,
	client_address, tax_rate, subtotal, tax_amount, total, status, notes, created_at, updated_at
	FROM invoices`

func scanInvoice(scanner interface{ Scan(...any) error }) (models.Invoice, error) {
	var inv models.Invoice
	err := scanner.Scan(&inv.ID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate, &inv.ClientName,
		&inv.ClientEmail, &inv.ClientAddress, &inv.TaxRate, &inv.Subtotal, &inv.TaxAmount,
		&inv.Total, &inv.Status, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func getInvoiceByID(id int) (models.Invoice, error) {
	inv, err := scanInvoice(DB.QueryRow(invoiceSelectQuery+" WHERE id = ?", id))
	if err != nil {
		return inv, err
	}
	inv.Items, err = getInvoiceItems(id)
	return inv, err
}

func getInvoiceItems(invoiceID int) ([]models.InvoiceItem, error) {
	rows, err := DB.Query(`SELECT id, invoice_id, description, quantity, price, total
		FROM invoice_items WHERE invoice_id = ? ORDER BY id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.InvoiceItem{}
	for rows.Next() {
		var it models.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.Price, &it.Total); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// draftFromInput turns a validated payload into line items with derived
// totals. The stored subtotal/tax/total always come from this computation,
// never from the request.
func draftFromInput(input *models.InvoiceInput) ([]invoice.LineItem, invoice.Totals) {
	items := make([]invoice.LineItem, 0, len(input.Items))
	for i, it := range input.Items {
		li := invoice.LineItem{
			ID:          i + 1,
			Description: it.Description,
			Quantity:    float64(it.Quantity),
			Price:       float64(it.Price),
		}
		li.Total = invoice.LineTotal(li.Quantity, li.Price)
		items = append(items, li)
	}
	return items, invoice.Compute(items, float64(input.TaxRate))
}

// invoiceList is the paginated response payload for ListInvoices.
type invoiceList struct {
	Invoices []models.Invoice `json:"invoices"`
	Total    int              `json:"total"`
}

// ListInvoices lists invoices with filters and pagination
// @Summary      List invoices
// @Description  Get invoices newest first, filtered by status, client search, or issue-date range.
// @Tags         invoices
// @Produce      json
// @Param        status  query     string  false  "Filter by status (paid/pending/overdue)"
// @Param        search  query     string  false  "Search by invoice number, client name, or notes"
// @Param        from    query     string  false  "Issue date lower bound (YYYY-MM-DD)"
// @Param        to      query     string  false  "Issue date upper bound (YYYY-MM-DD)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200     {object}  Response{data=invoiceList}
// @Router       /invoices [get]
// @Security     BasicAuth
func ListInvoices(w http.ResponseWriter, r *http.Request) {
	var conditions []string
	var args []any

	if s := r.URL.Query().Get("status"); s != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, s)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		conditions = append(conditions, "issue_date >= ?")
		args = append(args, from)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		conditions = append(conditions, "issue_date <= ?")
		args = append(args, to)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "(invoice_number LIKE ? OR client_name LIKE ? OR notes LIKE ?)")
		s := "%" + search + "%"
		args = append(args, s, s, s)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := DB.QueryRow("SELECT COUNT(*) FROM invoices"+where, args...).Scan(&total); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	limit, offset := parsePaging(r)
	rows, err := DB.Query(invoiceSelectQuery+where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		invoices = append(invoices, inv)
	}
	writeJSON(w, http.StatusOK, invoiceList{Invoices: invoices, Total: total})
}

// GetInvoice retrieves a single invoice with its line items
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  Response{data=models.Invoice}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id} [get]
// @Security     BasicAuth
func GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	inv, err := getInvoiceByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "invoice not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CreateInvoice creates a new invoice with its line items
// @Summary      Create invoice
// @Description  Create an invoice. Subtotal, tax amount, and total are computed from the items and tax rate; an invoice number is generated when absent.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      models.InvoiceInput  true  "Invoice contents"
// @Success      201      {object}  Response{data=models.Invoice}
// @Failure      400      {object}  Response{error=string}
// @Router       /invoices [post]
// @Security     BasicAuth
func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if input.InvoiceNumber == "" {
		input.InvoiceNumber = invoice.NewNumber(time.Now())
	}

	items, totals := draftFromInput(&input)

	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRow(`INSERT INTO invoices (invoice_number, issue_date, due_date, client_name, client_email,
		client_address, tax_rate, subtotal, tax_amount, total, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		input.InvoiceNumber, input.IssueDate, input.DueDate, input.ClientName, input.ClientEmail,
		input.ClientAddress, float64(input.TaxRate), totals.Subtotal, totals.TaxAmount, totals.Total,
		input.Status, input.Notes).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := insertItems(tx, id, items); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	inv, err := getInvoiceByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created invoice: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func insertItems(tx *sql.Tx, invoiceID int, items []invoice.LineItem) error {
	for _, it := range items {
		if _, err := tx.Exec(`INSERT INTO invoice_items (invoice_id, description, quantity, price, total)
			VALUES (?, ?, ?, ?, ?)`,
			invoiceID, it.Description, it.Quantity, it.Price, it.Total); err != nil {
			return fmt.Errorf("inserting line item: %w", err)
		}
	}
	return nil
}

// UpdateInvoice updates an invoice, replacing its line items
// @Summary      Update invoice
// @Description  Update an invoice. Line items are replaced wholesale and all derived totals recomputed.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Invoice ID"
// @Param        invoice  body      models.InvoiceInput  true  "Updated invoice contents"
// @Success      200      {object}  Response{data=models.Invoice}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /invoices/{id} [put]
// @Security     BasicAuth
func UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	items, totals := draftFromInput(&input)

	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE invoices SET invoice_number = ?, issue_date = ?, due_date = ?, client_name = ?,
		client_email = ?, client_address = ?, tax_rate = ?, subtotal = ?, tax_amount = ?, total = ?,
		status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.InvoiceNumber, input.IssueDate, input.DueDate, input.ClientName, input.ClientEmail,
		input.ClientAddress, float64(input.TaxRate), totals.Subtotal, totals.TaxAmount, totals.Total,
		input.Status, input.Notes, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "invoice not found")
		return
	}
	if _, err := tx.Exec("DELETE FROM invoice_items WHERE invoice_id = ?", id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := insertItems(tx, id, items); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	inv, err := getInvoiceByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated invoice: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// DeleteInvoice deletes an invoice and its line items
// @Summary      Delete invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id} [delete]
// @Security     BasicAuth
func DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "invoice not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// ListInvoiceItems retrieves the line items of an invoice
// @Summary      List invoice items
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  Response{data=[]models.InvoiceItem}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id}/items [get]
// @Security     BasicAuth
func ListInvoiceItems(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var exists int
	if err := DB.QueryRow("SELECT COUNT(*) FROM invoices WHERE id = ?", id).Scan(&exists); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if exists == 0 {
		writeError(w, http.StatusNotFound, "invoice not found")
		return
	}
	items, err := getInvoiceItems(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// SendInvoice validates an invoice is ready to send
// @Summary      Send invoice
// @Description  Validate that an invoice has complete client details. Delivery itself is handled outside this service.
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      400  {object}  Response{error=string}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id}/send [post]
// @Security     BasicAuth
func SendInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	inv, err := getInvoiceByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "invoice not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	if inv.ClientName == "" || inv.ClientEmail == "" {
		writeError(w, http.StatusBadRequest, "complete client details before sending")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "invoice sent to " + inv.ClientEmail})
}
