package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"marketplace/internal/domain/service"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	localPushTimeout      = 30 * time.Second
	localPushRetries      = 3
	localPushRetryWait    = 50 * time.Millisecond
	localPushMaxRetryWait = 500 * time.Millisecond
	localSubscription     = "projects/local/subscriptions/marketplace-events-sub"
)

// localHTTPPublisher pushes events straight to the event worker in the
// envelope Cloud Pub/Sub push subscriptions use. A 503 from the worker means
// "redeliver" and is retried the way Pub/Sub would.
type localHTTPPublisher struct {
	endpoint string
	client   *resty.Client
	logger   *slog.Logger
}

// PubSubPushMessage is the JSON body of a Pub/Sub push request.
type PubSubPushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	client := resty.New().
		SetTimeout(localPushTimeout).
		SetRetryCount(localPushRetries).
		SetRetryWaitTime(localPushRetryWait).
		SetRetryMaxWaitTime(localPushMaxRetryWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err == nil && resp.StatusCode() == http.StatusServiceUnavailable
		})

	return &localHTTPPublisher{
		endpoint: endpoint,
		client:   client,
		logger:   logger,
	}
}

func newPushEnvelope(event *service.MarketplaceEvent, publishedAt time.Time) (*PubSubPushMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s event", event.Type)
	}

	envelope := &PubSubPushMessage{Subscription: localSubscription}
	envelope.Message.Data = base64.StdEncoding.EncodeToString(data)
	envelope.Message.MessageID = uuid.NewString()
	envelope.Message.PublishTime = publishedAt.UTC().Format(time.RFC3339)
	envelope.Message.Attributes = eventAttributes(event)

	return envelope, nil
}

func (p *localHTTPPublisher) Publish(ctx context.Context, event *service.MarketplaceEvent) error {
	envelope, err := newPushEnvelope(event, time.Now())
	if err != nil {
		return err
	}

	req := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(envelope)
	if event.RequestID != "" {
		req.SetHeader("X-Request-Id", event.RequestID)
	}

	resp, err := req.Post(p.endpoint)
	if err != nil {
		return errors.Wrapf(err, "failed to push %s event", event.Type)
	}
	if resp.IsError() {
		return errors.Errorf("event worker rejected %s event: status %d", event.Type, resp.StatusCode())
	}

	p.logger.DebugContext(ctx, "[LocalPubSub] Event pushed",
		slog.String("endpoint", p.endpoint),
		slog.String("event_type", string(event.Type)),
		slog.String("aggregate_id", event.AggregateID),
		slog.Int("attempts", resp.Request.Attempt),
	)

	return nil
}

func (p *localHTTPPublisher) Close() error {
	return nil
}
