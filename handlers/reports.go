package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sidharthv/invoicing/invoice"
)

// fetchInvoiceRecords loads the snapshot the aggregation engine works over.
// An error here is a fetch failure, not an empty result; callers must surface
// it instead of reporting zeros.
func fetchInvoiceRecords() ([]invoice.Record, error) {
	rows, err := DB.Query("SELECT total, status, COALESCE(issue_date, ''), client_name FROM invoices")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []invoice.Record{}
	for rows.Next() {
		var r invoice.Record
		var issueDate string
		if err := rows.Scan(&r.Total, &r.Status, &issueDate, &r.ClientName); err != nil {
			return nil, err
		}
		// Unparseable dates leave a zero Date, which the engine excludes
		// from time-windowed figures.
		r.Date, _ = time.ParseInLocation("2006-01-02", issueDate, time.Local)
		records = append(records, r)
	}
	return records, rows.Err()
}

type summaryReport struct {
	TotalInvoices        int     `json:"total_invoices"`
	TotalAmount          float64 `json:"total_amount"`
	PaidAmount           float64 `json:"paid_amount"`
	PendingAmount        float64 `json:"pending_amount"`
	OverdueAmount        float64 `json:"overdue_amount"`
	AverageInvoiceAmount float64 `json:"average_invoice_amount"`
	PaidShare            float64 `json:"paid_share"`
	PendingShare         float64 `json:"pending_share"`
	OverdueShare         float64 `json:"overdue_share"`
}

// GetSummaryReport retrieves the invoice summary report
// @Summary      Invoice summary report
// @Description  Get totals, per-status amounts, the average invoice amount, and each status's share of the total.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  Response{data=summaryReport}
// @Router       /reports/summary [get]
// @Security     BasicAuth
func GetSummaryReport(w http.ResponseWriter, r *http.Request) {
	records, err := fetchInvoiceRecords()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats := invoice.Aggregate(records, time.Now())

	writeJSON(w, http.StatusOK, summaryReport{
		TotalInvoices:        stats.TotalInvoices,
		TotalAmount:          stats.TotalAmount,
		PaidAmount:           stats.PaidAmount,
		PendingAmount:        stats.PendingAmount,
		OverdueAmount:        stats.OverdueAmount,
		AverageInvoiceAmount: stats.AverageAmount,
		PaidShare:            invoice.PercentOfTotal(stats.PaidAmount, stats.TotalAmount),
		PendingShare:         invoice.PercentOfTotal(stats.PendingAmount, stats.TotalAmount),
		OverdueShare:         invoice.PercentOfTotal(stats.OverdueAmount, stats.TotalAmount),
	})
}

type salesByMonthReport struct {
	Year   int         `json:"year"`
	Months [12]float64 `json:"months"`
}

// GetSalesByMonth retrieves monthly sales for a year
// @Summary      Sales by month report
// @Description  Get a 12-slot series of paid invoice totals for the given year (defaults to the current year).
// @Tags         reports
// @Produce      json
// @Param        year  query     int  false  "Calendar year"
// @Success      200   {object}  Response{data=salesByMonthReport}
// @Router       /reports/sales-by-month [get]
// @Security     BasicAuth
func GetSalesByMonth(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		year = y
	}

	records, err := fetchInvoiceRecords()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, salesByMonthReport{Year: year, Months: invoice.MonthlySales(records, year)})
}

type statusReport struct {
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
	Overdue float64 `json:"overdue"`
}

// GetStatusReport retrieves per-status invoice amount totals
// @Summary      Invoice status report
// @Tags         reports
// @Produce      json
// @Success      200  {object}  Response{data=statusReport}
// @Router       /reports/status [get]
// @Security     BasicAuth
func GetStatusReport(w http.ResponseWriter, r *http.Request) {
	records, err := fetchInvoiceRecords()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats := invoice.Aggregate(records, time.Now())
	writeJSON(w, http.StatusOK, statusReport{
		Paid:    stats.PaidAmount,
		Pending: stats.PendingAmount,
		Overdue: stats.OverdueAmount,
	})
}

// GetTopClients retrieves the top clients by invoiced amount
// @Summary      Top clients report
// @Tags         reports
// @Produce      json
// @Param        limit  query     int  false  "Number of clients (default 5)"
// @Success      200    {object}  Response{data=[]invoice.ClientRevenue}
// @Router       /reports/top-clients [get]
// @Security     BasicAuth
func GetTopClients(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := fetchInvoiceRecords()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, invoice.TopClients(records, limit))
}
