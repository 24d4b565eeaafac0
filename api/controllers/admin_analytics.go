package controllers

import (
	"net/http"
	"strings"

	"github.com/calebhawthorne/regenmarket-backend/api/responses"
	"github.com/calebhawthorne/regenmarket-backend/api/validators"
	"github.com/calebhawthorne/regenmarket-backend/internal/analytics"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
	"github.com/calebhawthorne/regenmarket-backend/pkg/logger"
)

// AdminSalesOverview serves the monthly revenue dashboard.
func AdminSalesOverview(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		report, err := svc.SalesOverview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// AdminCustomerSegmentation serves the customer segment breakdown.
func AdminCustomerSegmentation(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		report, err := svc.CustomerSegmentation(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// AdminCohortAnalysis serves the cohort retention/revenue matrix.
func AdminCohortAnalysis(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		period, err := enums.ParseCohortPeriod(strings.TrimSpace(r.URL.Query().Get("period")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period"))
			return
		}
		metric, err := enums.ParseCohortMetric(strings.TrimSpace(r.URL.Query().Get("metric")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid metric"))
			return
		}

		report, err := svc.CohortAnalysis(r.Context(), period, metric)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// AdminProductPerformance serves the top-N product revenue ranking.
func AdminProductPerformance(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		topN, err := validators.ParseQueryInt(r, "top", 10, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.ProductPerformance(r.Context(), topN)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
