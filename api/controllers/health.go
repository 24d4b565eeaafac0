package controllers

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/calebhawthorne/regenmarket-backend/api/responses"
	"github.com/calebhawthorne/regenmarket-backend/pkg/config"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
	"github.com/calebhawthorne/regenmarket-backend/pkg/logger"
)

const envHeader = "X-RegenMarket-Env"

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every registered dependency
// answers. All failures are combined so one probe reveals every
// unreachable dependency, not just the first.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		var errs []error
		failed := make([]string, 0)
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				errs = append(errs, err)
				failed = append(failed, name)
			}
		}
		if len(errs) > 0 {
			sort.Strings(failed)
			combined := multierr.Combine(errs...)
			wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, combined, strings.Join(failed, ", ")+" unavailable")
			responses.WriteError(r.Context(), logg, w, wrapped)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
