package handlers

import (
	"net/http"
	"time"

	"github.com/sidharthv/invoicing/invoice"
	"github.com/sidharthv/invoicing/models"
)

type dashboardData struct {
	TotalRevenue    float64               `json:"total_revenue"`
	Outstanding     float64               `json:"outstanding"`
	Paid            float64               `json:"paid"`
	PendingInvoices int                   `json:"pending_invoices"`
	TotalInvoices   int                   `json:"total_invoices"`
	RevenueChange   float64               `json:"revenue_change"`
	MonthlyRevenue  [12]float64           `json:"monthly_revenue"`
	StatusCounts    []invoice.StatusCount `json:"status_counts"`
	RecentInvoices  []models.Invoice      `json:"recent_invoices"`
}

// GetDashboard retrieves dashboard summary statistics
// @Summary      Get dashboard
// @Description  Get revenue totals, paid vs outstanding split, 30-day revenue change, monthly series, status counts, and the five newest invoices. Statistics are recomputed from the current invoice snapshot on every call.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Response{data=dashboardData}
// @Router       /dashboard [get]
// @Security     BasicAuth
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	records, err := fetchInvoiceRecords()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats := invoice.Aggregate(records, time.Now())

	var pendingCount int
	for _, sc := range stats.StatusDistribution {
		if sc.Status != invoice.StatusPaid {
			pendingCount += sc.Count
		}
	}

	d := dashboardData{
		TotalRevenue:    stats.TotalAmount,
		Outstanding:     stats.PendingAmount + stats.OverdueAmount,
		Paid:            stats.PaidAmount,
		PendingInvoices: pendingCount,
		TotalInvoices:   stats.TotalInvoices,
		RevenueChange:   stats.RevenueChange,
		MonthlyRevenue:  stats.MonthlyRevenue,
		StatusCounts:    stats.StatusDistribution,
		RecentInvoices:  []models.Invoice{},
	}

	rows, err := DB.Query(invoiceSelectQuery + " ORDER BY created_at DESC, id DESC LIMIT 5")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		d.RecentInvoices = append(d.RecentInvoices, inv)
	}

	writeJSON(w, http.StatusOK, d)
}
