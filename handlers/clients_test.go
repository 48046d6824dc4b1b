package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidharthv/invoicing/models"
)

func TestClientCRUD(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	var created models.Client
	rec := doRequest(t, router, http.MethodPost, "/clients", map[string]any{
		"name":    "Acme Corp",
		"email":   "billing@acme.example",
		"address": "1 Main St",
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Acme Corp", created.Name)

	var fetched models.Client
	rec = doRequest(t, router, http.MethodGet, "/clients/1", nil, &fetched)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, fetched.ID)

	rec = doRequest(t, router, http.MethodPut, "/clients/1", map[string]any{"name": "Acme Corporation"}, &fetched)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme Corporation", fetched.Name)

	rec = doRequest(t, router, http.MethodDelete, "/clients/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/clients/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientValidation(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/clients", map[string]any{"email": "x@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientComputedBillingFields(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	doRequest(t, router, http.MethodPost, "/clients", map[string]any{"name": "Acme Corp"}, nil)
	seedInvoice(t, 100, "paid", "2026-08-01", "Acme Corp")
	seedInvoice(t, 50, "pending", "2026-08-02", "Acme Corp")

	var c models.Client
	rec := doRequest(t, router, http.MethodGet, "/clients/1", nil, &c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, c.InvoiceCount)
	assert.Equal(t, 150.0, c.TotalBilled)
}

func TestListClientsSearchAndPaging(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	for _, name := range []string{"Acme Corp", "Daily Planet", "Wayne Enterprises"} {
		doRequest(t, router, http.MethodPost, "/clients", map[string]any{"name": name}, nil)
	}

	var list clientList
	rec := doRequest(t, router, http.MethodGet, "/clients?search=acme", nil, &list)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, list.Total)

	rec = doRequest(t, router, http.MethodGet, "/clients?limit=2", nil, &list)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, list.Total)
	assert.Len(t, list.Clients, 2)
	assert.Equal(t, "Acme Corp", list.Clients[0].Name, "ordered by name")
}

func TestProductCRUD(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	var created models.Product
	rec := doRequest(t, router, http.MethodPost, "/products", map[string]any{
		"name":        "Hosting",
		"description": "Monthly hosting plan",
		"price":       25.0,
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 25.0, created.Price)

	rec = doRequest(t, router, http.MethodPut, "/products/1", map[string]any{"name": "Hosting", "price": 30.0}, &created)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30.0, created.Price)

	var list productList
	rec = doRequest(t, router, http.MethodGet, "/products?search=host", nil, &list)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, list.Total)

	rec = doRequest(t, router, http.MethodDelete, "/products/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/products/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductValidation(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/products", map[string]any{"name": "Hosting", "price": -5}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
