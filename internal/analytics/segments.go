package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
)

// Segmentation thresholds. The cascade below is evaluated top-down and the
// first match wins, so ordering is part of the contract.
const (
	vipSpendCents    = 100_000
	vipOrderCount    = 10
	loyalOrderCount  = 5
	recentWindowDays = 30
	atRiskAfterDays  = 90
	inactiveDays     = 180
)

// SegmentCustomers derives per-customer stats from their orders and assigns
// each to one mutually exclusive segment. Cancelled orders are ignored.
func SegmentCustomers(orders []models.Order, now time.Time) *SegmentationReport {
	type agg struct {
		spend int
		count int
		last  time.Time
	}
	byUser := map[uuid.UUID]*agg{}
	for _, o := range orders {
		if o.Status == enums.OrderStatusCancelled {
			continue
		}
		a, ok := byUser[o.UserID]
		if !ok {
			a = &agg{}
			byUser[o.UserID] = a
		}
		a.spend += o.TotalCents
		a.count++
		if o.CreatedAt.After(a.last) {
			a.last = o.CreatedAt
		}
	}

	report := &SegmentationReport{
		Customers: make([]CustomerSegment, 0, len(byUser)),
		Counts:    map[enums.CustomerSegment]int{},
	}

	for userID, a := range byUser {
		days := int(now.Sub(a.last).Hours() / 24)
		segment := classify(a.spend, a.count, days)

		report.Customers = append(report.Customers, CustomerSegment{
			UserID:                userID,
			TotalSpendCents:       a.spend,
			OrderCount:            a.count,
			AvgOrderValueCents:    a.spend / a.count,
			DaysSinceLastPurchase: days,
			Segment:               segment,
		})
		report.Counts[segment]++
	}

	sort.Slice(report.Customers, func(i, j int) bool {
		if report.Customers[i].TotalSpendCents != report.Customers[j].TotalSpendCents {
			return report.Customers[i].TotalSpendCents > report.Customers[j].TotalSpendCents
		}
		return report.Customers[i].UserID.String() < report.Customers[j].UserID.String()
	})
	return report
}

func classify(spendCents, orderCount, daysSinceLast int) enums.CustomerSegment {
	switch {
	case spendCents >= vipSpendCents && orderCount >= vipOrderCount:
		return enums.SegmentVIP
	case orderCount >= loyalOrderCount:
		return enums.SegmentLoyal
	case daysSinceLast <= recentWindowDays:
		return enums.SegmentRecent
	case daysSinceLast >= atRiskAfterDays && orderCount >= 2:
		return enums.SegmentAtRisk
	case orderCount >= 2:
		return enums.SegmentRegular
	case daysSinceLast >= inactiveDays:
		return enums.SegmentInactive
	default:
		return enums.SegmentNew
	}
}
