package enums

import "fmt"

// CohortPeriod selects how first-purchase cohorts are bucketed.
type CohortPeriod string

const (
	CohortPeriodMonth   CohortPeriod = "month"
	CohortPeriodQuarter CohortPeriod = "quarter"
	CohortPeriodYear    CohortPeriod = "year"
)

// CohortMetric selects what each cohort cell reports.
type CohortMetric string

const (
	CohortMetricRetention CohortMetric = "retention"
	CohortMetricRevenue   CohortMetric = "revenue"
)

// IsValid reports whether the value is a known CohortPeriod.
func (p CohortPeriod) IsValid() bool {
	switch p {
	case CohortPeriodMonth, CohortPeriodQuarter, CohortPeriodYear:
		return true
	}
	return false
}

// IsValid reports whether the value is a known CohortMetric.
func (m CohortMetric) IsValid() bool {
	switch m {
	case CohortMetricRetention, CohortMetricRevenue:
		return true
	}
	return false
}

// ParseCohortPeriod converts raw input into a CohortPeriod, defaulting
// to monthly buckets for empty input.
func ParseCohortPeriod(value string) (CohortPeriod, error) {
	if value == "" {
		return CohortPeriodMonth, nil
	}
	p := CohortPeriod(value)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid cohort period %q", value)
	}
	return p, nil
}

// ParseCohortMetric converts raw input into a CohortMetric, defaulting
// to retention for empty input.
func ParseCohortMetric(value string) (CohortMetric, error) {
	if value == "" {
		return CohortMetricRetention, nil
	}
	m := CohortMetric(value)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid cohort metric %q", value)
	}
	return m, nil
}
