package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sidharthv/invoicing/models"
)

const productSelectQuery = `SELECT id, name, description, price, created_at, updated_at FROM products`

func scanProduct(scanner interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := scanner.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func getProductByID(id int) (models.Product, error) {
	return scanProduct(DB.QueryRow(productSelectQuery+" WHERE id = ?", id))
}

// productList is the paginated response payload for ListProducts.
type productList struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
}

// ListProducts lists products with search and pagination
// @Summary      List products
// @Description  Get a paginated list of products, optionally filtered by a name/description search.
// @Tags         products
// @Produce      json
// @Param        search  query     string  false  "Search by name or description"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200     {object}  Response{data=productList}
// @Router       /products [get]
// @Security     BasicAuth
func ListProducts(w http.ResponseWriter, r *http.Request) {
	var conditions []string
	var args []any

	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "(name LIKE ? OR description LIKE ?)")
		s := "%" + search + "%"
		args = append(args, s, s)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := DB.QueryRow("SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	limit, offset := parsePaging(r)
	rows, err := DB.Query(productSelectQuery+where+" ORDER BY name LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		products = append(products, p)
	}
	writeJSON(w, http.StatusOK, productList{Products: products, Total: total})
}

// GetProduct retrieves a single product by ID
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  Response{data=models.Product}
// @Failure      404  {object}  Response{error=string}
// @Router       /products/{id} [get]
// @Security     BasicAuth
func GetProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	p, err := getProductByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "product not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProduct creates a new product
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product  body      models.ProductInput  true  "Product contents"
// @Success      201      {object}  Response{data=models.Product}
// @Failure      400      {object}  Response{error=string}
// @Router       /products [post]
// @Security     BasicAuth
func CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO products (name, description, price) VALUES (?, ?, ?) RETURNING id`,
		input.Name, input.Description, float64(input.Price)).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	p, err := getProductByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created product: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProduct updates an existing product
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Product ID"
// @Param        product  body      models.ProductInput  true  "Updated product contents"
// @Success      200      {object}  Response{data=models.Product}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /products/{id} [put]
// @Security     BasicAuth
func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE products SET name = ?, description = ?, price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.Name, input.Description, float64(input.Price), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	p, err := getProductByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated product: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProduct deletes a product
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /products/{id} [delete]
// @Security     BasicAuth
func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
