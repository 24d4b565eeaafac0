package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
)

func TestCohortAnalysisRetentionByMonth(t *testing.T) {
	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	orders := []models.Order{
		// january cohort: alice and bob; only alice returns in february
		orderAt(alice, 1000, enums.OrderStatusDelivered, jan),
		orderAt(bob, 1000, enums.OrderStatusDelivered, jan.Add(24*time.Hour)),
		orderAt(alice, 1000, enums.OrderStatusDelivered, feb),
		// february cohort: carol
		orderAt(carol, 1000, enums.OrderStatusDelivered, feb.Add(24*time.Hour)),
	}

	report := CohortAnalysis(orders, enums.CohortPeriodMonth, enums.CohortMetricRetention)

	if len(report.Periods) != 2 || report.Periods[0] != "2026-01" || report.Periods[1] != "2026-02" {
		t.Fatalf("unexpected periods %v", report.Periods)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("expected two cohorts, got %d", len(report.Rows))
	}

	janRow := report.Rows[0]
	if janRow.Cohort != "2026-01" || janRow.CohortSize != 2 {
		t.Fatalf("unexpected january cohort %+v", janRow)
	}
	if len(janRow.Values) != 2 || janRow.Values[0] != 100 || janRow.Values[1] != 50 {
		t.Fatalf("expected retention [100 50], got %v", janRow.Values)
	}

	febRow := report.Rows[1]
	if febRow.CohortSize != 1 || len(febRow.Values) != 1 || febRow.Values[0] != 100 {
		t.Fatalf("unexpected february cohort %+v", febRow)
	}
}

func TestCohortAnalysisRevenuePerMember(t *testing.T) {
	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

	alice := uuid.New()
	bob := uuid.New()

	orders := []models.Order{
		orderAt(alice, 1000, enums.OrderStatusDelivered, jan),
		orderAt(bob, 3000, enums.OrderStatusDelivered, jan),
		orderAt(alice, 500, enums.OrderStatusDelivered, feb),
	}

	report := CohortAnalysis(orders, enums.CohortPeriodMonth, enums.CohortMetricRevenue)
	row := report.Rows[0]
	if row.Values[0] != 2000 {
		t.Fatalf("expected 2000 avg revenue in cohort month, got %v", row.Values[0])
	}
	if row.Values[1] != 250 {
		t.Fatalf("expected 250 avg revenue in month two, got %v", row.Values[1])
	}
}

func TestCohortAnalysisQuarterAndYearLabels(t *testing.T) {
	ts := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	if got := periodLabel(ts, enums.CohortPeriodQuarter); got != "2026-Q2" {
		t.Fatalf("expected 2026-Q2, got %s", got)
	}
	if got := periodLabel(ts, enums.CohortPeriodYear); got != "2026" {
		t.Fatalf("expected 2026, got %s", got)
	}
	if got := periodLabel(ts, enums.CohortPeriodMonth); got != "2026-05" {
		t.Fatalf("expected 2026-05, got %s", got)
	}
}

func TestCohortAnalysisEmptyInput(t *testing.T) {
	report := CohortAnalysis(nil, enums.CohortPeriodMonth, enums.CohortMetricRetention)
	if len(report.Rows) != 0 || len(report.Periods) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
