package middleware

import (
	"net/http"

	"github.com/obitflow/obitflow-backend/api/responses"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
)

// HomeContext rejects requests whose token carries no funeral home claim.
func HomeContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if HomeIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "home context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
