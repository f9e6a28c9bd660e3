package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/config"
	"marketplace/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEvent(t *testing.T) *service.MarketplaceEvent {
	t.Helper()

	event, err := service.NewMarketplaceEvent(service.EventOrderPlaced, "order-1", service.OrderPlacedPayload{
		OrderID:     "order-1",
		OrderNumber: "SN202610160001",
		TotalAmount: "3500",
	})
	require.NoError(t, err)
	event.RequestID = "req-123"

	return event
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var received PubSubPushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	event := newTestEvent(t)

	require.NoError(t, publisher.Publish(context.Background(), event))

	assert.Equal(t, "req-123", requestID)
	assert.Equal(t, "order.placed", received.Message.Attributes["event_type"])
	assert.Equal(t, "order-1", received.Message.Attributes["aggregate_id"])
	assert.NotEmpty(t, received.Message.MessageID)

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.MarketplaceEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, service.EventOrderPlaced, decoded.Type)

	var payload service.OrderPlacedPayload
	require.NoError(t, json.Unmarshal(decoded.Payload, &payload))
	assert.Equal(t, "SN202610160001", payload.OrderNumber)
}

func TestLocalHTTPPublisher_ReportsWorkerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())

	err := publisher.Publish(context.Background(), newTestEvent(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)

	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true

	return nil
}

func TestKafkaPublisher_KeysByAggregate(t *testing.T) {
	writer := &fakeWriter{}
	publisher := newKafkaPublisher(writer, newDiscardLogger())

	require.NoError(t, publisher.Publish(context.Background(), newTestEvent(t)))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "order-1", string(msg.Key))

	headers := map[string]string{}
	for _, header := range msg.Headers {
		headers[header.Key] = string(header.Value)
	}
	assert.Equal(t, "order.placed", headers["event_type"])
	assert.Equal(t, "req-123", headers["request_id"])

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	publisher := newKafkaPublisher(&fakeWriter{err: errors.New("leader not available")}, newDiscardLogger())

	err := publisher.Publish(context.Background(), newTestEvent(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestNewEventPublisher_SelectsProvider(t *testing.T) {
	tests := []struct {
		name    string
		pubsub  *config.PubSubConfig
		wantErr bool
		check   func(t *testing.T, p service.EventPublisher)
	}{
		{
			name:   "unset provider is a no-op",
			pubsub: nil,
			check: func(t *testing.T, p service.EventPublisher) {
				assert.IsType(t, &noopPublisher{}, p)
			},
		},
		{
			name:   "local",
			pubsub: &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8081/push"},
			check: func(t *testing.T, p service.EventPublisher) {
				assert.IsType(t, &localHTTPPublisher{}, p)
			},
		},
		{
			name:   "kafka",
			pubsub: &config.PubSubConfig{Provider: "kafka", Brokers: []string{"localhost:9092"}, TopicID: "marketplace-events"},
			check: func(t *testing.T, p service.EventPublisher) {
				assert.IsType(t, &kafkaPublisher{}, p)
			},
		},
		{name: "local without endpoint", pubsub: &config.PubSubConfig{Provider: "local"}, wantErr: true},
		{name: "google without project", pubsub: &config.PubSubConfig{Provider: "google", TopicID: "t"}, wantErr: true},
		{name: "kafka without brokers", pubsub: &config.PubSubConfig{Provider: "kafka", TopicID: "t"}, wantErr: true},
		{name: "unknown provider", pubsub: &config.PubSubConfig{Provider: "carrier-pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.pubsub},
				Logger: newDiscardLogger(),
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			tt.check(t, publisher)
			lc.RequireStart().RequireStop()
		})
	}
}

func TestNewPubSubMessage_OrdersByAggregate(t *testing.T) {
	msg, err := newPubSubMessage(newTestEvent(t))
	require.NoError(t, err)

	assert.Equal(t, "order-1", msg.OrderingKey)
	assert.Equal(t, "req-123", msg.Attributes["request_id"])

	var decoded service.MarketplaceEvent
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.Equal(t, service.EventOrderPlaced, decoded.Type)
}

func TestLocalHTTPPublisher_RetriesRedeliveryRequests(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())

	require.NoError(t, publisher.Publish(context.Background(), newTestEvent(t)))
	assert.Equal(t, 3, calls)
}

func TestLocalHTTPPublisher_DoesNotRetryRejections(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	err := NewLocalHTTPPublisher(server.URL, newDiscardLogger()).Publish(context.Background(), newTestEvent(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, 1, calls)
}
