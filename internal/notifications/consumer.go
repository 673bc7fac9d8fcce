package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/internal/dispatch"
	"github.com/obitflow/obitflow-backend/pkg/db/models"
	"github.com/obitflow/obitflow-backend/pkg/enums"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/redis"
)

// EventCaseCreated is the attribute value the intake flow stamps on
// case-created messages.
const EventCaseCreated = "case.created"

const caseEventConsumer = "case-notifications"

type repository interface {
	Create(ctx context.Context, notification *models.Notification) error
}

type dispatcher interface {
	NotifyAllStaffNewCase(ctx context.Context, homeID uuid.UUID, data dispatch.NewCaseData) (*dispatch.FanoutResult, error)
}

// EventEnvelope wraps every case event published to the topic.
type EventEnvelope struct {
	EventID string          `json:"event_id"`
	Data    json.RawMessage `json:"data"`
}

// CaseCreatedPayload is the body of a case.created event.
type CaseCreatedPayload struct {
	HomeID          uuid.UUID `json:"home_id"`
	CaseID          string    `json:"case_id"`
	DeceasedName    string    `json:"deceased_name"`
	NextOfKinName   string    `json:"next_of_kin_name"`
	LocationOfDeath string    `json:"location_of_death"`
}

// Consumer watches case events and turns new cases into an in-app feed row
// plus an SMS fan-out to eligible staff.
type Consumer struct {
	repo         repository
	dispatcher   dispatcher
	subscription *pubsub.Subscriber
	idem         redis.IdempotencyStore
	idemTTL      time.Duration
	logg         *logger.Logger
}

// NewConsumer builds a case event consumer.
func NewConsumer(repo repository, disp dispatcher, subscription *pubsub.Subscriber, idem redis.IdempotencyStore, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if disp == nil {
		return nil, fmt.Errorf("dispatcher required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("case events subscription required")
	}
	if idem == nil {
		return nil, fmt.Errorf("idempotency store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		dispatcher:   disp,
		subscription: subscription,
		idem:         idem,
		idemTTL:      72 * time.Hour,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if eventType != EventCaseCreated {
		c.logg.Info(logCtx, "skipping non-case event")
		return processResult{ack: true}
	}

	var envelope EventEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}
	if envelope.EventID == "" {
		c.logg.Error(logCtx, "event id missing", nil)
		return processResult{ack: true}
	}

	idemKey := c.idem.IdempotencyKey(caseEventConsumer, envelope.EventID)
	fresh, err := c.idem.SetNX(ctx, idemKey, "1", c.idemTTL)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if !fresh {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	var payload CaseCreatedPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		_ = c.idem.Del(ctx, idemKey)
		return processResult{nack: true}
	}

	logCtx = c.logg.WithFields(logCtx, map[string]any{
		"home_id": payload.HomeID.String(),
		"case_id": payload.CaseID,
	})

	if err := c.handleCaseCreated(ctx, payload, logCtx); err != nil {
		c.logg.Error(logCtx, "case notification handling failed", err)
		_ = c.idem.Del(ctx, idemKey)
		return processResult{nack: true}
	}

	return processResult{ack: true}
}

func (c *Consumer) handleCaseCreated(ctx context.Context, payload CaseCreatedPayload, logCtx context.Context) error {
	if payload.HomeID == uuid.Nil {
		return fmt.Errorf("home id missing")
	}

	deceased := payload.DeceasedName
	if deceased == "" {
		deceased = "Unknown"
	}
	link := fmt.Sprintf("/cases/%s", payload.CaseID)
	notification := &models.Notification{
		HomeID:  payload.HomeID,
		Type:    enums.NotificationTypeCaseAlert,
		Title:   "New case",
		Message: fmt.Sprintf("A new case was opened for %s.", deceased),
		Link:    &link,
	}
	if err := c.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("create feed notification: %w", err)
	}

	result, err := c.dispatcher.NotifyAllStaffNewCase(ctx, payload.HomeID, dispatch.NewCaseData{
		DeceasedName:    payload.DeceasedName,
		NextOfKinName:   payload.NextOfKinName,
		LocationOfDeath: payload.LocationOfDeath,
		CaseID:          payload.CaseID,
	})
	if err != nil {
		return fmt.Errorf("fan out new case alert: %w", err)
	}
	if result.TotalFailed > 0 {
		c.logg.Warn(logCtx, "new case fan-out finished with failed sends")
	}
	return nil
}
