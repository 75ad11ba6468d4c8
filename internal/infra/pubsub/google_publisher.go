package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"campuseats/internal/domain/constants"
	"campuseats/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googlePubSubPublisher implements EventPublisher using Google Cloud Pub/Sub
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher creates a new Google Pub/Sub publisher
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Check if topic exists using TopicAdminClient
	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath,
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	publisher := client.Publisher(topicID)

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &googlePubSubPublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// PublishOrderStatus publishes an order status transition to Google Pub/Sub
func (p *googlePubSubPublisher) PublishOrderStatus(ctx context.Context, event *service.OrderStatusEvent) error {
	attributes := map[string]string{
		"event_type": constants.EventTypeOrderStatus,
		"order_id":   event.OrderID,
		"vendor_id":  event.VendorID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return p.publish(ctx, event, attributes, event.OrderID)
}

// PublishDeliveryLocation publishes a courier location update to Google Pub/Sub
func (p *googlePubSubPublisher) PublishDeliveryLocation(ctx context.Context, event *service.DeliveryLocationEvent) error {
	attributes := map[string]string{
		"event_type":  constants.EventTypeCourierLocation,
		"delivery_id": event.DeliveryID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return p.publish(ctx, event, attributes, event.DeliveryID)
}

func (p *googlePubSubPublisher) publish(ctx context.Context, event any, attributes map[string]string, key string) error {
	// Serialize the event to JSON
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	}

	p.logger.Info("[GooglePubSub] Publishing event",
		slog.String("event_type", attributes["event_type"]),
		slog.String("key", key),
	)

	// Publish message and wait for the result
	result := p.publisher.Publish(ctx, msg)

	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Info("[GooglePubSub] Event published successfully",
		slog.String("event_type", attributes["event_type"]),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close releases Pub/Sub client resources
func (p *googlePubSubPublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}
