package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
)

// CohortAnalysis groups customers by the period of their first order and,
// for every period from that point forward, computes either retention
// (distinct active customers / cohort size) or average revenue per cohort
// member. Cancelled orders are ignored.
func CohortAnalysis(orders []models.Order, period enums.CohortPeriod, metric enums.CohortMetric) *CohortReport {
	report := &CohortReport{
		Period:  period,
		Metric:  metric,
		Periods: []string{},
		Rows:    []CohortRow{},
	}

	type activity struct {
		at    time.Time
		total int
	}
	byUser := map[uuid.UUID][]activity{}
	for _, o := range orders {
		if o.Status == enums.OrderStatusCancelled {
			continue
		}
		byUser[o.UserID] = append(byUser[o.UserID], activity{at: o.CreatedAt.UTC(), total: o.TotalCents})
	}
	if len(byUser) == 0 {
		return report
	}

	// cohort = period label of each customer's first order
	cohortOf := map[uuid.UUID]string{}
	labels := map[string]bool{}
	for userID, acts := range byUser {
		first := acts[0].at
		for _, a := range acts {
			if a.at.Before(first) {
				first = a.at
			}
		}
		label := periodLabel(first, period)
		cohortOf[userID] = label
		labels[label] = true
		for _, a := range acts {
			labels[periodLabel(a.at, period)] = true
		}
	}

	report.Periods = sortedLabels(labels)
	index := map[string]int{}
	for i, label := range report.Periods {
		index[label] = i
	}

	cohortMembers := map[string]int{}
	for _, label := range cohortOf {
		cohortMembers[label]++
	}

	// active[cohort][period] = distinct active users; revenue likewise in cents
	type cell struct {
		users   map[uuid.UUID]bool
		revenue int
	}
	cells := map[string][]*cell{}
	for cohort := range cohortMembers {
		row := make([]*cell, len(report.Periods))
		for i := range row {
			row[i] = &cell{users: map[uuid.UUID]bool{}}
		}
		cells[cohort] = row
	}
	for userID, acts := range byUser {
		cohort := cohortOf[userID]
		for _, a := range acts {
			i := index[periodLabel(a.at, period)]
			cells[cohort][i].users[userID] = true
			cells[cohort][i].revenue += a.total
		}
	}

	cohorts := sortedLabels(boolKeys(cohortMembers))
	for _, cohort := range cohorts {
		size := cohortMembers[cohort]
		start := index[cohort]
		values := make([]float64, 0, len(report.Periods)-start)
		for i := start; i < len(report.Periods); i++ {
			c := cells[cohort][i]
			switch metric {
			case enums.CohortMetricRevenue:
				values = append(values, float64(c.revenue)/float64(size))
			default:
				values = append(values, 100*float64(len(c.users))/float64(size))
			}
		}
		report.Rows = append(report.Rows, CohortRow{
			Cohort:     cohort,
			CohortSize: size,
			Values:     values,
		})
	}
	return report
}

func periodLabel(t time.Time, period enums.CohortPeriod) string {
	t = t.UTC()
	switch period {
	case enums.CohortPeriodYear:
		return fmt.Sprintf("%04d", t.Year())
	case enums.CohortPeriodQuarter:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", t.Year(), quarter)
	default:
		return fmt.Sprintf("%04d-%02d", t.Year(), t.Month())
	}
}

func sortedLabels(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for label := range set {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

func boolKeys(m map[string]int) map[string]bool {
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}
