package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/api/responses"
	pkgAuth "github.com/calebhawthorne/regenmarket-backend/pkg/auth"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
	"github.com/calebhawthorne/regenmarket-backend/pkg/logger"
)

// RequireCapability gates a route on the authorizer's capability table.
// It must run after Auth so the subject is present in the context.
func RequireCapability(authz pkgAuth.Authorizer, resource, action string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := subjectFromContext(r)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			if authz == nil || !authz.CanAccess(r.Context(), subject, resource, action) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func subjectFromContext(r *http.Request) (pkgAuth.Subject, bool) {
	userID, err := uuid.Parse(UserIDFromContext(r.Context()))
	if err != nil {
		return pkgAuth.Subject{}, false
	}
	role := enums.UserRole(RoleFromContext(r.Context()))
	if !role.IsValid() {
		return pkgAuth.Subject{}, false
	}
	return pkgAuth.Subject{UserID: userID, Role: role}, true
}
