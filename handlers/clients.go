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

const clientSelectQuery = `SELECT c.id, c.name, c.email, c.address, c.created_at, c.updated_at,
	COALESCE((SELECT COUNT(*) FROM invoices i WHERE i.client_name = c.name), 0),
	COALESCE((SELECT SUM(i.total) FROM invoices i WHERE i.client_name = c.name), 0)
	FROM clients c`

func scanClient(scanner interface{ Scan(...any) error }) (models.Client, error) {
	var c models.Client
	err := scanner.Scan(&c.ID, &c.Name, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt,
		&c.InvoiceCount, &c.TotalBilled)
	return c, err
}

func getClientByID(id int) (models.Client, error) {
	return scanClient(DB.QueryRow(clientSelectQuery+" WHERE c.id = ?", id))
}

// clientList is the paginated response payload for ListClients.
type clientList struct {
	Clients []models.Client `json:"clients"`
	Total   int             `json:"total"`
}

// ListClients lists clients with search and pagination
// @Summary      List clients
// @Description  Get a paginated list of clients, optionally filtered by a name/email search.
// @Tags         clients
// @Produce      json
// @Param        search  query     string  false  "Search by name or email"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200     {object}  Response{data=clientList}
// @Router       /clients [get]
// @Security     BasicAuth
func ListClients(w http.ResponseWriter, r *http.Request) {
	var conditions []string
	var args []any

	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "(c.name LIKE ? OR c.email LIKE ?)")
		s := "%" + search + "%"
		args = append(args, s, s)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := DB.QueryRow("SELECT COUNT(*) FROM clients c"+where, args...).Scan(&total); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	limit, offset := parsePaging(r)
	rows, err := DB.Query(clientSelectQuery+where+" ORDER BY c.name LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		clients = append(clients, c)
	}
	writeJSON(w, http.StatusOK, clientList{Clients: clients, Total: total})
}

// GetClient retrieves a single client by ID
// @Summary      Get client
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  Response{data=models.Client}
// @Failure      404  {object}  Response{error=string}
// @Router       /clients/{id} [get]
// @Security     BasicAuth
func GetClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	c, err := getClientByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "client not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateClient creates a new client
// @Summary      Create client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        client  body      models.ClientInput  true  "Client contents"
// @Success      201     {object}  Response{data=models.Client}
// @Failure      400     {object}  Response{error=string}
// @Router       /clients [post]
// @Security     BasicAuth
func CreateClient(w http.ResponseWriter, r *http.Request) {
	var input models.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO clients (name, email, address) VALUES (?, ?, ?) RETURNING id`,
		input.Name, input.Email, input.Address).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	c, err := getClientByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created client: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateClient updates an existing client
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Client ID"
// @Param        client  body      models.ClientInput  true  "Updated client contents"
// @Success      200     {object}  Response{data=models.Client}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /clients/{id} [put]
// @Security     BasicAuth
func UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE clients SET name = ?, email = ?, address = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.Name, input.Email, input.Address, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}
	c, err := getClientByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated client: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteClient deletes a client
// @Summary      Delete client
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /clients/{id} [delete]
// @Security     BasicAuth
func DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
