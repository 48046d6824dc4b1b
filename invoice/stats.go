package invoice

import (
	"math"
	"sort"
	"time"
)

// Invoice statuses. Anything else found in a snapshot is treated as pending.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusOverdue = "overdue"
)

// Statuses lists the recognized buckets in fixed display order.
var Statuses = []string{StatusPaid, StatusPending, StatusOverdue}

// Record is the snapshot shape of a persisted invoice consumed by the
// aggregation engine. Date is the issue date; a zero Date is excluded from
// the time-windowed figures.
type Record struct {
	Total      float64
	Status     string
	Date       time.Time
	ClientName string
}

// StatusCount is one slice of the status distribution chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ClientRevenue is one row of the top-clients ranking.
type ClientRevenue struct {
	Name     string  `json:"name"`
	Total    float64 `json:"total"`
	Invoices int     `json:"invoices"`
}

// Statistics is everything the dashboard and reports derive from an invoice
// snapshot. Recomputed fresh on every request, never cached.
type Statistics struct {
	TotalInvoices      int           `json:"total_invoices"`
	TotalAmount        float64       `json:"total_amount"`
	PaidAmount         float64       `json:"paid_amount"`
	PendingAmount      float64       `json:"pending_amount"`
	OverdueAmount      float64       `json:"overdue_amount"`
	AverageAmount      float64       `json:"average_amount"`
	RevenueChange      float64       `json:"revenue_change"`
	MonthlyRevenue     [12]float64   `json:"monthly_revenue"`
	StatusDistribution []StatusCount `json:"status_distribution"`
}

// NormalizeStatus maps a stored status onto a bucket. Missing or unrecognized
// values count as pending.
func NormalizeStatus(s string) string {
	switch s {
	case StatusPaid, StatusPending, StatusOverdue:
		return s
	default:
		return StatusPending
	}
}

// Aggregate computes Statistics over a snapshot of invoice records. An empty
// snapshot yields all zeros; it is the caller's job to distinguish that from
// a failed fetch. The monthly series is keyed by calendar month regardless of
// year. The revenue change compares the 30 days ending at now against the 30
// days before that, as a percentage rounded to one decimal, and is 0 when the
// prior window is empty.
func Aggregate(records []Record, now time.Time) Statistics {
	s := Statistics{TotalInvoices: len(records)}

	thirtyDaysAgo := now.AddDate(0, 0, -30)
	sixtyDaysAgo := now.AddDate(0, 0, -60)

	counts := make(map[string]int, len(Statuses))
	var last30, prior30 float64

	for _, r := range records {
		s.TotalAmount += r.Total

		status := NormalizeStatus(r.Status)
		counts[status]++
		switch status {
		case StatusPaid:
			s.PaidAmount += r.Total
		case StatusOverdue:
			s.OverdueAmount += r.Total
		default:
			s.PendingAmount += r.Total
		}

		if r.Date.IsZero() {
			continue
		}
		s.MonthlyRevenue[r.Date.Month()-1] += r.Total
		if !r.Date.Before(thirtyDaysAgo) {
			last30 += r.Total
		} else if !r.Date.Before(sixtyDaysAgo) {
			prior30 += r.Total
		}
	}

	if s.TotalInvoices > 0 {
		s.AverageAmount = s.TotalAmount / float64(s.TotalInvoices)
	}
	if prior30 != 0 {
		s.RevenueChange = math.Round((last30-prior30)/prior30*1000) / 10
	}

	s.StatusDistribution = make([]StatusCount, 0, len(Statuses))
	for _, status := range Statuses {
		s.StatusDistribution = append(s.StatusDistribution, StatusCount{Status: status, Count: counts[status]})
	}
	return s
}

// PercentOfTotal returns part as a percentage of total, with a zero total
// treated as 1 so the degenerate case reads 0% instead of NaN.
func PercentOfTotal(part, total float64) float64 {
	if total == 0 {
		total = 1
	}
	return part / total * 100
}

// MonthlySales is the sales-by-month report series: paid invoices only,
// restricted to the given calendar year.
func MonthlySales(records []Record, year int) [12]float64 {
	var months [12]float64
	for _, r := range records {
		if r.Date.IsZero() || r.Date.Year() != year || r.Status != StatusPaid {
			continue
		}
		months[r.Date.Month()-1] += r.Total
	}
	return months
}

// TopClients ranks clients by total invoiced amount, descending, ties broken
// by name. A non-positive limit defaults to 5.
func TopClients(records []Record, limit int) []ClientRevenue {
	if limit <= 0 {
		limit = 5
	}
	byName := make(map[string]*ClientRevenue)
	for _, r := range records {
		if r.ClientName == "" {
			continue
		}
		cr, ok := byName[r.ClientName]
		if !ok {
			cr = &ClientRevenue{Name: r.ClientName}
			byName[r.ClientName] = cr
		}
		cr.Total += r.Total
		cr.Invoices++
	}

	ranked := make([]ClientRevenue, 0, len(byName))
	for _, cr := range byName {
		ranked = append(ranked, *cr)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
