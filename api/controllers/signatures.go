package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/obitflow/obitflow-backend/api/responses"
	"github.com/obitflow/obitflow-backend/internal/signatures"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/types"
)

// SendSignatureLink texts a signing link to a named recipient. Same legacy
// response contract as the staff notify endpoint.
func SendSignatureLink(svc signatures.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteRaw(w, http.StatusInternalServerError, types.SendFailure{Error: "signatures service unavailable"})
			return
		}

		defer io.Copy(io.Discard, r.Body)
		var dto signatures.SendLinkDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			responses.WriteRaw(w, http.StatusBadRequest, types.SendFailure{Error: "invalid request body"})
			return
		}

		if dto.To == "" || dto.SignerName == "" || dto.DeceasedName == "" || dto.SignatureURL == "" {
			responses.WriteRaw(w, http.StatusBadRequest, types.SendFailure{Error: "to, signerName, deceasedName and signatureUrl are required"})
			return
		}

		sid, err := svc.SendSignatureLink(ctx, dto)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation {
				responses.WriteRaw(w, http.StatusBadRequest, types.SendFailure{Error: typed.Message()})
				return
			}
			if logg != nil {
				logg.Error(ctx, "signature link send failed", err)
			}
			responses.WriteRaw(w, http.StatusInternalServerError, types.SendFailure{
				Error:   "Failed to send signature link",
				Details: err.Error(),
			})
			return
		}

		responses.WriteRaw(w, http.StatusOK, types.SendReceipt{Success: true, MessageSID: sid})
	}
}
