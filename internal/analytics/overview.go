package analytics

import (
	"time"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
)

// SalesOverview buckets orders by calendar month for the current and previous
// year relative to now. Cancelled orders are excluded from revenue but still
// counted in the status distribution.
func SalesOverview(orders []models.Order, now time.Time) *SalesOverviewReport {
	report := &SalesOverviewReport{
		CurrentYear:        emptyMonths(now.Year()),
		PreviousYear:       emptyMonths(now.Year() - 1),
		StatusDistribution: map[enums.OrderStatus]int{},
	}

	revenueOrders := 0
	for _, o := range orders {
		report.StatusDistribution[o.Status]++
		if o.Status == enums.OrderStatusCancelled {
			continue
		}

		revenueOrders++
		report.TotalRevenueCents += o.TotalCents

		year, month := o.CreatedAt.UTC().Year(), int(o.CreatedAt.UTC().Month())
		switch year {
		case now.Year():
			report.CurrentYear[month-1].RevenueCents += o.TotalCents
			report.CurrentYear[month-1].OrderCount++
		case now.Year() - 1:
			report.PreviousYear[month-1].RevenueCents += o.TotalCents
			report.PreviousYear[month-1].OrderCount++
		}
	}

	report.TotalOrders = revenueOrders
	if revenueOrders > 0 {
		report.AvgOrderValueCents = report.TotalRevenueCents / revenueOrders
	}
	return report
}

func emptyMonths(year int) []MonthlyRevenue {
	out := make([]MonthlyRevenue, 12)
	for i := range out {
		out[i] = MonthlyRevenue{Year: year, Month: i + 1}
	}
	return out
}
