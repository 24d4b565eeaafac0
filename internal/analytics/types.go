package analytics

import (
	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
)

// MonthlyRevenue is one calendar-month revenue bucket.
type MonthlyRevenue struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	RevenueCents int `json:"revenue_cents"`
	OrderCount   int `json:"order_count"`
}

// SalesOverviewReport summarizes order volume and revenue.
type SalesOverviewReport struct {
	CurrentYear        []MonthlyRevenue          `json:"current_year"`
	PreviousYear       []MonthlyRevenue          `json:"previous_year"`
	TotalRevenueCents  int                       `json:"total_revenue_cents"`
	TotalOrders        int                       `json:"total_orders"`
	AvgOrderValueCents int                       `json:"avg_order_value_cents"`
	StatusDistribution map[enums.OrderStatus]int `json:"status_distribution"`
}

// CustomerSegment is one customer's derived stats plus their assigned segment.
type CustomerSegment struct {
	UserID                uuid.UUID             `json:"user_id"`
	TotalSpendCents       int                   `json:"total_spend_cents"`
	OrderCount            int                   `json:"order_count"`
	AvgOrderValueCents    int                   `json:"avg_order_value_cents"`
	DaysSinceLastPurchase int                   `json:"days_since_last_purchase"`
	Segment               enums.CustomerSegment `json:"segment"`
}

// SegmentationReport groups customers plus per-segment counts.
type SegmentationReport struct {
	Customers []CustomerSegment             `json:"customers"`
	Counts    map[enums.CustomerSegment]int `json:"counts"`
}

// CohortRow is one first-purchase cohort with its per-period metric values.
type CohortRow struct {
	Cohort     string    `json:"cohort"`
	CohortSize int       `json:"cohort_size"`
	Values     []float64 `json:"values"`
}

// CohortReport is the full cohort matrix; Periods labels the value columns.
type CohortReport struct {
	Period  enums.CohortPeriod `json:"period"`
	Metric  enums.CohortMetric `json:"metric"`
	Periods []string           `json:"periods"`
	Rows    []CohortRow        `json:"rows"`
}

// ProductPerformanceRow aggregates one product's sales.
type ProductPerformanceRow struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	RevenueCents  int       `json:"revenue_cents"`
	QuantitySold  int       `json:"quantity_sold"`
	DistinctOrder int       `json:"distinct_orders"`
}

// ProductPerformanceReport ranks products by revenue.
type ProductPerformanceReport struct {
	Products []ProductPerformanceRow `json:"products"`
}
