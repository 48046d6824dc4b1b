package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sidharthv/invoicing/db"
)

// setupTestDB points the handlers at a fresh in-memory database. A single
// connection is forced because each sqlite :memory: connection is its own
// database.
func setupTestDB(t *testing.T) {
	t.Helper()
	database, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(ON)")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(database))
	DB = database
	t.Cleanup(func() { database.Close() })
}

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/clients", ListClients)
	r.Post("/clients", CreateClient)
	r.Get("/clients/{id}", GetClient)
	r.Put("/clients/{id}", UpdateClient)
	r.Delete("/clients/{id}", DeleteClient)
	r.Get("/products", ListProducts)
	r.Post("/products", CreateProduct)
	r.Get("/products/{id}", GetProduct)
	r.Put("/products/{id}", UpdateProduct)
	r.Delete("/products/{id}", DeleteProduct)
	r.Get("/invoices", ListInvoices)
	r.Post("/invoices", CreateInvoice)
	r.Get("/invoices/{id}", GetInvoice)
	r.Put("/invoices/{id}", UpdateInvoice)
	r.Delete("/invoices/{id}", DeleteInvoice)
	r.Get("/invoices/{id}/items", ListInvoiceItems)
	r.Post("/invoices/{id}/send", SendInvoice)
	r.Get("/dashboard", GetDashboard)
	r.Get("/reports/summary", GetSummaryReport)
	r.Get("/reports/sales-by-month", GetSalesByMonth)
	r.Get("/reports/status", GetStatusReport)
	r.Get("/reports/top-clients", GetTopClients)
	return r
}

// doRequest runs a request through the test router and decodes the response
// envelope's data into out (when out is non-nil).
func doRequest(t *testing.T, router http.Handler, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil {
		var env struct {
			Data  json.RawMessage `json:"data"`
			Error string          `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		if len(env.Data) > 0 {
			require.NoError(t, json.Unmarshal(env.Data, out))
		}
	}
	return rec
}

// seedInvoice inserts an invoice row directly, bypassing the handler, for
// report fixtures.
func seedInvoice(t *testing.T, total float64, status, issueDate, clientName string) {
	t.Helper()
	_, err := DB.Exec(`INSERT INTO invoices (invoice_number, issue_date, client_name, client_email, subtotal, total, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"INV-2026-001", issueDate, clientName, "billing@example.com", total, total, status)
	require.NoError(t, err)
}
