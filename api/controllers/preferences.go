package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/api/middleware"
	"github.com/obitflow/obitflow-backend/api/responses"
	"github.com/obitflow/obitflow-backend/api/validators"
	"github.com/obitflow/obitflow-backend/internal/profiles"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
)

// GetPreferences returns the caller's SMS notification preferences.
func GetPreferences(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, err := svc.GetPreferences(r.Context(), profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prefs)
	}
}

// UpdatePreferences overwrites the caller's SMS notification preferences.
func UpdatePreferences(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		profileID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var dto profiles.UpdatePreferencesDTO
		if err := validators.DecodeJSONBody(r, &dto); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdatePreferences(r.Context(), profileID, dto); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}

func profileIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	profileID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return profileID, nil
}
