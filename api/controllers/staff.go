package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/api/responses"
	"github.com/obitflow/obitflow-backend/api/validators"
	"github.com/obitflow/obitflow-backend/internal/staff"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
)

// ListStaff returns the home's staff directory.
func ListStaff(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "staff service unavailable"))
			return
		}

		homeID, err := homeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		members, err := svc.List(r.Context(), homeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, members)
	}
}

// CreateStaff adds a directory entry.
func CreateStaff(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "staff service unavailable"))
			return
		}

		homeID, err := homeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var dto staff.CreateStaffDTO
		if err := validators.DecodeJSONBody(r, &dto); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto.HomeID = homeID
		dto.FullName = validators.SanitizeString(dto.FullName, 120)

		member, err := svc.Create(r.Context(), dto)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, member)
	}
}

// UpdateStaff applies a partial update to a directory entry.
func UpdateStaff(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "staff service unavailable"))
			return
		}

		homeID, err := homeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		memberID, err := uuid.Parse(chi.URLParam(r, "staffId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid staff id"))
			return
		}

		var dto staff.UpdateStaffDTO
		if err := validators.DecodeJSONBody(r, &dto); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Update(r.Context(), homeID, memberID, dto); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}

// DeleteStaff removes a directory entry.
func DeleteStaff(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "staff service unavailable"))
			return
		}

		homeID, err := homeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		memberID, err := uuid.Parse(chi.URLParam(r, "staffId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid staff id"))
			return
		}

		if err := svc.Delete(r.Context(), homeID, memberID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
