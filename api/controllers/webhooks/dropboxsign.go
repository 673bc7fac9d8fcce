package webhooks

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/obitflow/obitflow-backend/api/responses"
	"github.com/obitflow/obitflow-backend/internal/webhooks/dropboxsign"
	"github.com/obitflow/obitflow-backend/pkg/logger"
)

// DropboxSignWebhook receives e-signature provider callbacks. The contract
// is fixed: any parseable body is acknowledged with 200 {"success":true}
// even when downstream dispatch fails, so the provider never retry-storms on
// notification trouble. Only an unparseable body earns a 500.
func DropboxSignWebhook(svc *dropboxsign.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "failed to read webhook body", err)
			}
			responses.WriteRaw(w, http.StatusInternalServerError, map[string]string{"error": "Webhook processing failed"})
			return
		}

		var envelope dropboxsign.Envelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			if logg != nil {
				logg.Error(ctx, "failed to parse webhook body", err)
			}
			responses.WriteRaw(w, http.StatusInternalServerError, map[string]string{"error": "Webhook processing failed"})
			return
		}

		if svc != nil {
			svc.HandleEvent(ctx, &envelope)
		}

		responses.WriteRaw(w, http.StatusOK, map[string]bool{"success": true})
	}
}
