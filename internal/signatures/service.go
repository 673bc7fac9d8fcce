package signatures

import (
	"context"
	"fmt"
	"time"

	"github.com/obitflow/obitflow-backend/pkg/config"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/twilio"
)

// SendLinkDTO carries the validated signature link payload. All fields are
// required; the HTTP boundary rejects incomplete requests before this
// service runs.
type SendLinkDTO struct {
	To           string `json:"to" validate:"required"`
	SignerName   string `json:"signerName" validate:"required"`
	DeceasedName string `json:"deceasedName" validate:"required"`
	SignatureURL string `json:"signatureUrl" validate:"required,url"`
}

// Service sends e-signature invitation links over SMS.
type Service interface {
	SendSignatureLink(ctx context.Context, dto SendLinkDTO) (string, error)
}

type service struct {
	sender      twilio.Sender
	logg        *logger.Logger
	sendTimeout time.Duration
}

// NewService wires signature dependencies.
func NewService(sender twilio.Sender, logg *logger.Logger, cfg config.DispatchConfig) (Service, error) {
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sms sender required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}

	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &service{sender: sender, logg: logg, sendTimeout: timeout}, nil
}

// SendSignatureLink sends a single SMS with the signing link and returns the
// provider message identifier.
func (s *service) SendSignatureLink(ctx context.Context, dto SendLinkDTO) (string, error) {
	if dto.To == "" || dto.SignerName == "" || dto.DeceasedName == "" || dto.SignatureURL == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "to, signerName, deceasedName and signatureUrl are required")
	}

	body := fmt.Sprintf(
		"Hello %s, a document for %s is ready for your signature: %s",
		dto.SignerName, dto.DeceasedName, dto.SignatureURL,
	)

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	sid, err := s.sender.SendSMS(sendCtx, dto.To, body)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeProviderSend, err, "send signature link")
	}

	s.logg.Info(s.logg.WithField(ctx, "message_sid", sid), "signature link sent")
	return sid, nil
}
