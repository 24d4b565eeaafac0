package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
)

func ordersFor(userID uuid.UUID, count, totalCentsEach int, last time.Time, spacing time.Duration) []models.Order {
	out := make([]models.Order, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, orderAt(userID, totalCentsEach, enums.OrderStatusDelivered, last.Add(-time.Duration(i)*spacing)))
	}
	return out
}

func TestSegmentCustomersCascade(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	vip := uuid.New()
	loyal := uuid.New()
	recent := uuid.New()
	atRisk := uuid.New()
	regular := uuid.New()
	inactive := uuid.New()
	fresh := uuid.New()

	var orders []models.Order
	// 10 orders x 15000 = 150000 spend
	orders = append(orders, ordersFor(vip, 10, 15_000, now.Add(-10*24*time.Hour), 24*time.Hour)...)
	// 5 orders, low spend, recent enough but loyal wins first
	orders = append(orders, ordersFor(loyal, 5, 2_000, now.Add(-5*24*time.Hour), 24*time.Hour)...)
	// single order 3 days ago
	orders = append(orders, ordersFor(recent, 1, 2_000, now.Add(-3*24*time.Hour), 0)...)
	// two orders, last one 120 days ago
	orders = append(orders, ordersFor(atRisk, 2, 2_000, now.Add(-120*24*time.Hour), 24*time.Hour)...)
	// two orders, last one 45 days ago: not recent, not at risk
	orders = append(orders, ordersFor(regular, 2, 2_000, now.Add(-45*24*time.Hour), 24*time.Hour)...)
	// single order 200 days ago
	orders = append(orders, ordersFor(inactive, 1, 2_000, now.Add(-200*24*time.Hour), 0)...)
	// single order 45 days ago: falls through every rule
	orders = append(orders, ordersFor(fresh, 1, 2_000, now.Add(-45*24*time.Hour), 0)...)

	report := SegmentCustomers(orders, now)

	want := map[uuid.UUID]enums.CustomerSegment{
		vip:      enums.SegmentVIP,
		loyal:    enums.SegmentLoyal,
		recent:   enums.SegmentRecent,
		atRisk:   enums.SegmentAtRisk,
		regular:  enums.SegmentRegular,
		inactive: enums.SegmentInactive,
		fresh:    enums.SegmentNew,
	}

	got := map[uuid.UUID]enums.CustomerSegment{}
	for _, c := range report.Customers {
		got[c.UserID] = c.Segment
	}
	for userID, segment := range want {
		if got[userID] != segment {
			t.Errorf("expected %s, got %s", segment, got[userID])
		}
	}
	if report.Counts[enums.SegmentVIP] != 1 {
		t.Fatalf("expected one vip, got %d", report.Counts[enums.SegmentVIP])
	}
}

func TestSegmentCustomersStatsAndOrdering(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	big := uuid.New()
	small := uuid.New()

	var orders []models.Order
	orders = append(orders, ordersFor(big, 2, 5_000, now.Add(-2*24*time.Hour), 24*time.Hour)...)
	orders = append(orders, ordersFor(small, 1, 1_000, now.Add(-2*24*time.Hour), 0)...)

	report := SegmentCustomers(orders, now)
	if len(report.Customers) != 2 {
		t.Fatalf("expected two customers, got %d", len(report.Customers))
	}
	first := report.Customers[0]
	if first.UserID != big {
		t.Fatalf("expected biggest spender first")
	}
	if first.TotalSpendCents != 10_000 || first.OrderCount != 2 || first.AvgOrderValueCents != 5_000 {
		t.Fatalf("unexpected stats %+v", first)
	}
	if first.DaysSinceLastPurchase != 2 {
		t.Fatalf("expected 2 days since last purchase, got %d", first.DaysSinceLastPurchase)
	}
}

func TestSegmentCustomersIgnoresCancelledAndEmpty(t *testing.T) {
	now := time.Now().UTC()
	user := uuid.New()
	orders := []models.Order{orderAt(user, 5_000, enums.OrderStatusCancelled, now.Add(-24*time.Hour))}

	report := SegmentCustomers(orders, now)
	if len(report.Customers) != 0 {
		t.Fatalf("expected cancelled-only customer excluded")
	}

	empty := SegmentCustomers(nil, now)
	if len(empty.Customers) != 0 || len(empty.Counts) != 0 {
		t.Fatalf("expected empty report")
	}
}
