package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/api/middleware"
	"github.com/obitflow/obitflow-backend/api/responses"
	"github.com/obitflow/obitflow-backend/api/validators"
	"github.com/obitflow/obitflow-backend/internal/cases"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/pagination"
)

// ListCases returns the home's cases, newest first.
func ListCases(svc cases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cases service unavailable"))
			return
		}

		homeID, err := homeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := svc.GetAllCases(r.Context(), cases.ListParams{
			HomeID: homeID,
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		responses.WriteSuccess(w, result)
	}
}

// GetCase returns one case, or 404 when the repository yields nothing.
func GetCase(svc cases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cases service unavailable"))
			return
		}

		homeID, err := homeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		caseID, err := uuid.Parse(chi.URLParam(r, "caseId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid case id"))
			return
		}

		record, ok := svc.GetCaseByID(r.Context(), homeID, caseID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "case not found"))
			return
		}
		responses.WriteSuccess(w, record)
	}
}

func homeIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.HomeIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "home context missing")
	}
	homeID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid home id")
	}
	return homeID, nil
}
