package pubsub

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pubsub "cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/obitflow/obitflow-backend/pkg/config"
	"github.com/obitflow/obitflow-backend/pkg/logger"
)

// Client wraps the Pub/Sub v2 client for the case-events stream.
type Client struct {
	client    *pubsub.Client
	projectID string
	cfg       config.PubSubConfig
}

var (
	errProjectIDRequired = errors.New("gcp project id is required")
	errNoSubscription    = errors.New("pubsub subscription name is required")
)

// NewClient creates a Pub/Sub v2 client and verifies the configured
// subscription exists. Topics and subscriptions are provisioned out of band.
func NewClient(ctx context.Context, gcp config.GCPConfig, cfg config.PubSubConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(gcp.ProjectID) == "" {
		return nil, errProjectIDRequired
	}

	psClient, err := pubsub.NewClient(ctx, gcp.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	c := &Client{
		client:    psClient,
		projectID: gcp.ProjectID,
		cfg:       cfg,
	}

	if strings.TrimSpace(cfg.CaseEventsSubscription) == "" {
		_ = psClient.Close()
		return nil, errNoSubscription
	}
	if err := c.ensureSubscriptionExists(ctx, cfg.CaseEventsSubscription); err != nil {
		_ = psClient.Close()
		return nil, err
	}

	if logg != nil {
		logg.Info(ctx, "pubsub client initialized")
	}

	return c, nil
}

func (c *Client) ensureSubscriptionExists(ctx context.Context, name string) error {
	fullName := c.subscriptionResourceName(name)
	if fullName == "" {
		return fmt.Errorf("subscription %q not configured", name)
	}

	_, err := c.client.SubscriptionAdminClient.GetSubscription(
		ctx,
		&pubsubpb.GetSubscriptionRequest{Subscription: fullName},
	)
	if err != nil {
		// v2 uses gRPC errors; NotFound means the subscription doesn't exist.
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("subscription %q does not exist", name)
		}
		return fmt.Errorf("checking subscription %q: %w", name, err)
	}

	return nil
}

// CaseEventsSubscription returns the subscriber handle for case-intake events.
func (c *Client) CaseEventsSubscription() *pubsub.Subscriber {
	if c == nil || c.client == nil {
		return nil
	}
	fullName := c.subscriptionResourceName(c.cfg.CaseEventsSubscription)
	if fullName == "" {
		return nil
	}
	return c.client.Subscriber(fullName)
}

// CaseEventsPublisher returns a publisher handle for the case-events topic.
func (c *Client) CaseEventsPublisher() *pubsub.Publisher {
	if c == nil || c.client == nil {
		return nil
	}
	fullName := c.topicResourceName(c.cfg.CaseEventsTopic)
	if fullName == "" {
		return nil
	}
	return c.client.Publisher(fullName)
}

// Close releases the underlying gRPC resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) subscriptionResourceName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "projects/") {
		return trimmed
	}
	return fmt.Sprintf("projects/%s/subscriptions/%s", c.projectID, trimmed)
}

func (c *Client) topicResourceName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "projects/") {
		return trimmed
	}
	return fmt.Sprintf("projects/%s/topics/%s", c.projectID, trimmed)
}
