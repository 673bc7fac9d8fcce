package twilio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/obitflow/obitflow-backend/pkg/config"
	"github.com/obitflow/obitflow-backend/pkg/logger"
)

var (
	errAccountSIDRequired = errors.New("twilio account sid is required")
	errAuthTokenRequired  = errors.New("twilio auth token is required")
	errFromNumberRequired = errors.New("twilio from number is required")
)

// Sender is the send-message surface the dispatch layer consumes.
type Sender interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
}

// Client wraps Twilio's REST client plus the configured sender number.
type Client struct {
	api       *twilio.RestClient
	from      string
	attempts  uint64
	retryBase time.Duration
}

// NewClient initializes Twilio once with the configured credentials.
func NewClient(ctx context.Context, cfg config.TwilioConfig, dispatch config.DispatchConfig, logg *logger.Logger) (*Client, error) {
	sid := strings.TrimSpace(cfg.AccountSID)
	if sid == "" {
		return nil, errAccountSIDRequired
	}
	token := strings.TrimSpace(cfg.AuthToken)
	if token == "" {
		return nil, errAuthTokenRequired
	}
	from := strings.TrimSpace(cfg.FromNumber)
	if from == "" {
		return nil, errFromNumberRequired
	}

	api := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})

	attempts := uint64(dispatch.RetryAttempts)
	if attempts == 0 {
		attempts = 1
	}
	base := dispatch.RetryBase
	if base <= 0 {
		base = 250 * time.Millisecond
	}

	if logg != nil {
		logg.Info(ctx, "twilio client initialized")
	}

	return &Client{
		api:       api,
		from:      from,
		attempts:  attempts,
		retryBase: base,
	}, nil
}

// From reports the configured sender number.
func (c *Client) From() string {
	if c == nil {
		return ""
	}
	return c.from
}

// SendSMS delivers one message and returns the provider message SID. Transient
// provider failures are retried with capped exponential backoff; the caller's
// context still bounds the whole attempt.
func (c *Client) SendSMS(ctx context.Context, to, body string) (string, error) {
	if c == nil || c.api == nil {
		return "", errors.New("twilio client not initialized")
	}
	if strings.TrimSpace(to) == "" {
		return "", errors.New("recipient number is required")
	}
	if strings.TrimSpace(body) == "" {
		return "", errors.New("message body is required")
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(c.from)
	params.SetTo(to)
	params.SetBody(body)

	backoff := retry.WithMaxRetries(c.attempts-1, retry.NewExponential(c.retryBase))

	var sid string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		msg, err := c.api.Api.CreateMessage(params)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("create message: %w", err))
		}
		if msg.Sid != nil {
			sid = *msg.Sid
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return sid, nil
}
