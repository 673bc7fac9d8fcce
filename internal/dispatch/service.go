package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/obitflow/obitflow-backend/pkg/config"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/metrics"
	"github.com/obitflow/obitflow-backend/pkg/twilio"
)

// Service dispatches case event notifications over SMS.
type Service interface {
	NotifyStaff(ctx context.Context, phone string, req NotificationRequest) (string, error)
	NotifyPhones(ctx context.Context, phones []string, req NotificationRequest) *FanoutResult
	NotifyAllStaffNewCase(ctx context.Context, homeID uuid.UUID, data NewCaseData) (*FanoutResult, error)
	NotifyAllStaffDocumentSigned(ctx context.Context, homeID uuid.UUID, data DocumentSignedData) (*FanoutResult, error)
}

// RecipientResult records the outcome of one send within a fan-out.
type RecipientResult struct {
	Phone      string `json:"phone"`
	MessageSID string `json:"messageSid,omitempty"`
	Err        error  `json:"-"`
}

// FanoutResult aggregates a settle-all fan-out. Success is true when at
// least one recipient received the message; total failure is the only
// failure mode.
type FanoutResult struct {
	Success     bool              `json:"success"`
	TotalSent   int               `json:"totalSent"`
	TotalFailed int               `json:"totalFailed"`
	Results     []RecipientResult `json:"results"`
	Err         error             `json:"-"`
}

type service struct {
	sender      twilio.Sender
	resolver    RecipientResolver
	logg        *logger.Logger
	met         *metrics.DispatchMetrics
	sendTimeout time.Duration
}

// NewService wires the dispatcher. Metrics may be nil for callers that do not
// export them.
func NewService(sender twilio.Sender, resolver RecipientResolver, logg *logger.Logger, met *metrics.DispatchMetrics, cfg config.DispatchConfig) (Service, error) {
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sms sender required")
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "recipient resolver required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}

	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &service{
		sender:      sender,
		resolver:    resolver,
		logg:        logg,
		met:         met,
		sendTimeout: timeout,
	}, nil
}

// NotifyStaff sends exactly one SMS for the request and returns the provider
// message identifier.
func (s *service) NotifyStaff(ctx context.Context, phone string, req NotificationRequest) (string, error) {
	if phone == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "staff phone required")
	}

	body, err := req.Body()
	if err != nil {
		return "", err
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	sid, err := s.sender.SendSMS(sendCtx, phone, body)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeProviderSend, err, "send staff sms")
	}
	return sid, nil
}

// NotifyPhones fans the request out across every phone concurrently with a
// settle-all join: every send is attempted regardless of sibling failures,
// and the per-recipient outcomes are all collected before aggregating.
func (s *service) NotifyPhones(ctx context.Context, phones []string, req NotificationRequest) *FanoutResult {
	started := time.Now()
	result := &FanoutResult{Results: make([]RecipientResult, len(phones))}

	var wg sync.WaitGroup
	for i, phone := range phones {
		wg.Add(1)
		go func(i int, phone string) {
			defer wg.Done()
			sid, err := s.NotifyStaff(ctx, phone, req)
			result.Results[i] = RecipientResult{Phone: phone, MessageSID: sid, Err: err}
		}(i, phone)
	}
	wg.Wait()

	for _, r := range result.Results {
		if r.Err != nil {
			result.TotalFailed++
			result.Err = multierr.Append(result.Err, r.Err)
			s.met.IncFailed(string(req.Kind))
			continue
		}
		result.TotalSent++
		s.met.IncSent(string(req.Kind))
	}
	result.Success = result.TotalSent > 0
	s.met.ObserveFanout(string(req.Kind), time.Since(started))

	if result.Err != nil {
		s.logg.Warn(ctx, "sms fan-out finished with failures: "+result.Err.Error())
	}
	return result
}

// NotifyAllStaffNewCase resolves the eligible recipients for the home and
// fans out a new-case alert.
func (s *service) NotifyAllStaffNewCase(ctx context.Context, homeID uuid.UUID, data NewCaseData) (*FanoutResult, error) {
	return s.notifyAll(ctx, homeID, NewCaseRequest(data))
}

// NotifyAllStaffDocumentSigned resolves the eligible recipients for the home
// and fans out a document-signed alert.
func (s *service) NotifyAllStaffDocumentSigned(ctx context.Context, homeID uuid.UUID, data DocumentSignedData) (*FanoutResult, error) {
	return s.notifyAll(ctx, homeID, DocumentSignedRequest(data))
}

func (s *service) notifyAll(ctx context.Context, homeID uuid.UUID, req NotificationRequest) (*FanoutResult, error) {
	recipients, err := s.resolver.Resolve(ctx, homeID)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		s.logg.Info(ctx, "no eligible recipients, skipping fan-out")
		return &FanoutResult{Results: []RecipientResult{}}, nil
	}
	return s.NotifyPhones(ctx, recipients, req), nil
}
