package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/wkclabs/go-ai-orderflow/internal/aws"
	"github.com/wkclabs/go-ai-orderflow/internal/orders"
)

// Processor consumes order events and acknowledges new orders by moving them
// from pending to processing.
type Processor struct {
	orderStore *orders.Store
	metrics    *aws.Metrics
	logger     *logrus.Logger
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, ordersTable, metricsNamespace string, logger *logrus.Logger) *Processor {
	return &Processor{
		orderStore: orders.NewStore(clients.DynamoDB, ordersTable),
		metrics:    aws.NewMetrics(clients.CloudWatch, metricsNamespace),
		logger:     logger,
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			p.logger.WithError(err).Error("Worker error")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var event aws.OrderEvent
	if err := json.Unmarshal([]byte(rec.Body), &event); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	if event.EventType != "order.created" {
		p.logger.WithField("event_type", event.EventType).Warn("Skipping unknown event type")
		return nil
	}

	log := p.logger.WithFields(logrus.Fields{
		"order_id": event.OrderID,
		"user_id":  event.UserID,
	})

	err := p.orderStore.TransitionStatus(ctx, event.OrderID, orders.StatusPending, orders.StatusProcessing)
	if err == orders.ErrStatusMismatch {
		// Replayed event, or the status already moved on. The transition must
		// not regress the order, so check what is there and swallow the event.
		current, getErr := p.orderStore.Get(ctx, event.OrderID)
		if getErr != nil {
			return fmt.Errorf("fetch order after mismatch: %w", getErr)
		}
		if current == nil {
			// Should never happen; DLQ if it does.
			return fmt.Errorf("order not found: %s", event.OrderID)
		}
		log.WithField("status", current.Status).Info("Order already past pending, skipping")
		p.recordAck(ctx, "duplicate")
		return nil
	}
	if err != nil {
		return fmt.Errorf("transition order to processing: %w", err)
	}

	p.recordAck(ctx, "acknowledged")
	log.Info("Order acknowledged")
	return nil
}

func (p *Processor) recordAck(ctx context.Context, outcome string) {
	if err := p.metrics.OrderAcknowledged(ctx, outcome); err != nil {
		p.logger.WithError(err).Warn("Failed to record acknowledgement metric")
	}
}
