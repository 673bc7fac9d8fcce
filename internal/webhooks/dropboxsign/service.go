package dropboxsign

import (
	"context"

	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/internal/dispatch"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
)

// Dispatcher is the slice of the notification dispatcher the relay needs.
type Dispatcher interface {
	NotifyAllStaffDocumentSigned(ctx context.Context, homeID uuid.UUID, data dispatch.DocumentSignedData) (*dispatch.FanoutResult, error)
}

// Service relays provider signature events into staff notifications. Once an
// envelope parses, processing always reports success back to the caller so
// the provider never retry-storms on downstream notification failures.
type Service struct {
	dispatcher Dispatcher
	guard      *IdempotencyGuard
	logg       *logger.Logger
}

type ServiceParams struct {
	Dispatcher Dispatcher
	Guard      *IdempotencyGuard
	Logger     *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Dispatcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "dispatcher required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Service{
		dispatcher: params.Dispatcher,
		guard:      params.Guard,
		logg:       params.Logger,
	}, nil
}

// HandleEvent processes one parsed provider envelope. It never returns an
// error for downstream dispatch failures; those are logged and swallowed.
func (s *Service) HandleEvent(ctx context.Context, envelope *Envelope) {
	if envelope == nil {
		return
	}

	event := envelope.Event
	ctx = s.logg.WithField(ctx, "event_type", event.EventType)

	if s.guard != nil && event.EventHash != "" {
		duplicate, err := s.guard.CheckAndMark(ctx, event.EventHash)
		if err != nil {
			s.logg.Warn(ctx, "idempotency check failed, processing anyway: "+err.Error())
		} else if duplicate {
			s.logg.Info(ctx, "duplicate signature event, skipping")
			return
		}
	}

	switch event.EventType {
	case EventSigned:
		s.handleSigned(ctx, event.SignatureRequest)
	case EventViewed, EventSent, EventDeclined:
		s.logg.Info(ctx, "signature event acknowledged without dispatch")
	default:
		s.logg.Info(ctx, "unrecognized signature event type")
	}
}

func (s *Service) handleSigned(ctx context.Context, request SignatureRequest) {
	meta := request.Metadata
	if meta.CaseID == "" {
		s.logg.Info(ctx, "signed event carries no case id, nothing to dispatch")
		return
	}

	homeID, err := uuid.Parse(meta.HomeID)
	if err != nil {
		s.logg.Warn(ctx, "signed event carries no usable home id, nothing to dispatch")
		return
	}

	ctx = s.logg.WithCaseID(ctx, meta.CaseID)
	result, err := s.dispatcher.NotifyAllStaffDocumentSigned(ctx, homeID, dispatch.DocumentSignedData{
		SignerName:   request.SignerName(),
		DocumentType: meta.DocumentType,
		DeceasedName: meta.DeceasedName,
		CaseID:       meta.CaseID,
	})
	if err != nil {
		s.logg.Error(ctx, "document signed dispatch failed", err)
		return
	}
	if result.TotalFailed > 0 {
		s.logg.Warn(ctx, "document signed dispatch finished with failed sends")
	}
}
