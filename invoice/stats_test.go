package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statsNow = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func day(daysAgo int) time.Time {
	return statsNow.AddDate(0, 0, -daysAgo)
}

func TestAggregateStatusBuckets(t *testing.T) {
	records := []Record{
		{Total: 100, Status: "paid", Date: day(5)},
		{Total: 200, Status: "pending", Date: day(5)},
		{Total: 50, Date: day(5)}, // missing status defaults to pending
	}

	s := Aggregate(records, statsNow)

	assert.Equal(t, 3, s.TotalInvoices)
	assert.Equal(t, 350.0, s.TotalAmount)
	assert.Equal(t, 100.0, s.PaidAmount)
	assert.Equal(t, 250.0, s.PendingAmount)
	assert.Equal(t, 0.0, s.OverdueAmount)
	assert.InDelta(t, 116.6667, s.AverageAmount, 0.0001)
}

func TestAggregateUnrecognizedStatusCountsAsPending(t *testing.T) {
	records := []Record{
		{Total: 75, Status: "archived", Date: day(3)},
	}

	s := Aggregate(records, statsNow)

	assert.Equal(t, 75.0, s.PendingAmount)
	assert.Equal(t, 0.0, s.PaidAmount)
	require.Len(t, s.StatusDistribution, 3)
	assert.Equal(t, StatusCount{Status: "pending", Count: 1}, s.StatusDistribution[1])
}

func TestAggregateEmptySnapshot(t *testing.T) {
	s := Aggregate(nil, statsNow)

	assert.Equal(t, 0, s.TotalInvoices)
	assert.Equal(t, 0.0, s.TotalAmount)
	assert.Equal(t, 0.0, s.AverageAmount)
	assert.Equal(t, 0.0, s.RevenueChange)
	assert.Equal(t, [12]float64{}, s.MonthlyRevenue)
	assert.Equal(t, []StatusCount{
		{Status: "paid", Count: 0},
		{Status: "pending", Count: 0},
		{Status: "overdue", Count: 0},
	}, s.StatusDistribution)
}

func TestAggregateStatusDistributionOrder(t *testing.T) {
	records := []Record{
		{Total: 10, Status: "overdue", Date: day(1)},
		{Total: 10, Status: "paid", Date: day(1)},
		{Total: 10, Status: "paid", Date: day(1)},
		{Total: 10, Status: "pending", Date: day(1)},
	}

	s := Aggregate(records, statsNow)

	assert.Equal(t, []StatusCount{
		{Status: "paid", Count: 2},
		{Status: "pending", Count: 1},
		{Status: "overdue", Count: 1},
	}, s.StatusDistribution)
}

func TestAggregateRevenueChange(t *testing.T) {
	records := []Record{
		{Total: 150, Status: "paid", Date: day(10)},  // trailing window
		{Total: 100, Status: "paid", Date: day(45)},  // prior window
		{Total: 999, Status: "paid", Date: day(120)}, // outside both
	}

	s := Aggregate(records, statsNow)

	assert.Equal(t, 50.0, s.RevenueChange)
}

func TestAggregateRevenueChangeRoundsToOneDecimal(t *testing.T) {
	records := []Record{
		{Total: 110, Status: "paid", Date: day(10)},
		{Total: 30, Status: "paid", Date: day(45)},
	}

	s := Aggregate(records, statsNow)

	// (110-30)/30*100 = 266.666...
	assert.Equal(t, 266.7, s.RevenueChange)
}

func TestAggregateRevenueChangeZeroPriorWindow(t *testing.T) {
	records := []Record{
		{Total: 500, Status: "paid", Date: day(10)},
	}

	s := Aggregate(records, statsNow)

	assert.Equal(t, 0.0, s.RevenueChange)
}

func TestAggregateMonthlyRevenueConflatesYears(t *testing.T) {
	records := []Record{
		{Total: 100, Status: "paid", Date: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)},
		{Total: 40, Status: "pending", Date: time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)},
		{Total: 25, Status: "paid", Date: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)},
	}

	s := Aggregate(records, statsNow)

	assert.Equal(t, 140.0, s.MonthlyRevenue[0]) // both Januaries land in slot 0
	assert.Equal(t, 25.0, s.MonthlyRevenue[2])
}

func TestAggregateSkipsZeroDatesInTimeSeries(t *testing.T) {
	records := []Record{
		{Total: 100, Status: "paid"},
	}

	s := Aggregate(records, statsNow)

	assert.Equal(t, 100.0, s.TotalAmount)
	assert.Equal(t, [12]float64{}, s.MonthlyRevenue)
	assert.Equal(t, 0.0, s.RevenueChange)
}

func TestPercentOfTotal(t *testing.T) {
	assert.Equal(t, 25.0, PercentOfTotal(50, 200))
	assert.Equal(t, 0.0, PercentOfTotal(0, 0))
	assert.Equal(t, 100.0, PercentOfTotal(350, 350))
}

func TestMonthlySales(t *testing.T) {
	records := []Record{
		{Total: 100, Status: "paid", Date: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{Total: 60, Status: "paid", Date: time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)},
		{Total: 40, Status: "pending", Date: time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)}, // not paid
		{Total: 75, Status: "paid", Date: time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC)},     // wrong year
	}

	months := MonthlySales(records, 2026)

	assert.Equal(t, 160.0, months[1])
	assert.Equal(t, 0.0, months[0])
}

func TestTopClients(t *testing.T) {
	records := []Record{
		{Total: 100, ClientName: "Acme Corp", Date: day(1)},
		{Total: 300, ClientName: "Wayne Enterprises", Date: day(2)},
		{Total: 250, ClientName: "Acme Corp", Date: day(3)},
		{Total: 50, ClientName: "Daily Planet", Date: day(4)},
		{Total: 10, ClientName: "", Date: day(5)}, // nameless records are skipped
	}

	top := TopClients(records, 2)

	require.Len(t, top, 2)
	assert.Equal(t, ClientRevenue{Name: "Acme Corp", Total: 350, Invoices: 2}, top[0])
	assert.Equal(t, ClientRevenue{Name: "Wayne Enterprises", Total: 300, Invoices: 1}, top[1])
}

func TestTopClientsTieBreaksByName(t *testing.T) {
	records := []Record{
		{Total: 100, ClientName: "Zeta"},
		{Total: 100, ClientName: "Alpha"},
	}

	top := TopClients(records, 0) // defaults to 5

	require.Len(t, top, 2)
	assert.Equal(t, "Alpha", top[0].Name)
	assert.Equal(t, "Zeta", top[1].Name)
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "paid", NormalizeStatus("paid"))
	assert.Equal(t, "overdue", NormalizeStatus("overdue"))
	assert.Equal(t, "pending", NormalizeStatus(""))
	assert.Equal(t, "pending", NormalizeStatus("archived"))
}
