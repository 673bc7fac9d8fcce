package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/obitflow/obitflow-backend/api/responses"
	"github.com/obitflow/obitflow-backend/internal/dispatch"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/types"
)

// Wire values for the notify endpoint's type discriminator. These predate
// the internal kind names and keep their hyphenated spelling.
const (
	notifyTypeNewCase        = "new-case"
	notifyTypeDocumentSigned = "document-signed"
)

type notifyStaffBody struct {
	Type            string `json:"type"`
	StaffPhone      string `json:"staffPhone"`
	DeceasedName    string `json:"deceasedName"`
	NextOfKinName   string `json:"nextOfKinName"`
	LocationOfDeath string `json:"locationOfDeath"`
	SignerName      string `json:"signerName"`
	DocumentType    string `json:"documentType"`
	CaseID          string `json:"caseId"`
}

// NotifyStaff triggers a single staff SMS. The endpoint keeps its original
// response contract: 400 on missing fields, 500 {error, details} on provider
// failure, 200 {success, messageSid} on success.
func NotifyStaff(svc dispatch.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteRaw(w, http.StatusInternalServerError, types.SendFailure{Error: "dispatch service unavailable"})
			return
		}

		defer io.Copy(io.Discard, r.Body)
		var body notifyStaffBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			responses.WriteRaw(w, http.StatusBadRequest, types.SendFailure{Error: "invalid request body"})
			return
		}

		if body.Type == "" || body.StaffPhone == "" {
			responses.WriteRaw(w, http.StatusBadRequest, types.SendFailure{Error: "type and staffPhone are required"})
			return
		}

		var req dispatch.NotificationRequest
		switch body.Type {
		case notifyTypeNewCase:
			req = dispatch.NewCaseRequest(dispatch.NewCaseData{
				DeceasedName:    body.DeceasedName,
				NextOfKinName:   body.NextOfKinName,
				LocationOfDeath: body.LocationOfDeath,
				CaseID:          body.CaseID,
			})
		case notifyTypeDocumentSigned:
			req = dispatch.DocumentSignedRequest(dispatch.DocumentSignedData{
				SignerName:   body.SignerName,
				DocumentType: body.DocumentType,
				DeceasedName: body.DeceasedName,
				CaseID:       body.CaseID,
			})
		default:
			responses.WriteRaw(w, http.StatusBadRequest, types.SendFailure{Error: "unknown notification type"})
			return
		}

		sid, err := svc.NotifyStaff(ctx, body.StaffPhone, req)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation {
				responses.WriteRaw(w, http.StatusBadRequest, types.SendFailure{Error: typed.Message()})
				return
			}
			if logg != nil {
				logg.Error(ctx, "staff notify send failed", err)
			}
			responses.WriteRaw(w, http.StatusInternalServerError, types.SendFailure{
				Error:   "Failed to send notification",
				Details: err.Error(),
			})
			return
		}

		responses.WriteRaw(w, http.StatusOK, types.SendReceipt{Success: true, MessageSID: sid})
	}
}
