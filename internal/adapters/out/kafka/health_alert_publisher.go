// Package kafka publishes schedule-health alerts with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"production/internal/core/domain/model/health"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

const tracerName = "production/adapters/kafka"

// Producer is the part of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// NewClient builds a franz-go client producing to topic and waiting for all
// in-sync replicas.
func NewClient(brokers []string, topic, clientID string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID(clientID),
	)
}

// AlertMessage is the JSON payload of one alert record. Dates are YYYY-MM-DD;
// dueDate is omitted when the order has none.
type AlertMessage struct {
	OrderID             string `json:"orderId"`
	Status              string `json:"status"`
	Department          string `json:"department"`
	DueDate             string `json:"dueDate,omitempty"`
	DwellDays           int    `json:"dwellDays"`
	ExpectedDwellDays   int    `json:"expectedDwellDays"`
	RemainingLeadDays   int    `json:"remainingLeadDays"`
	ProjectedCompletion string `json:"projectedCompletion"`
	DetectedOn          string `json:"detectedOn"`
}

func toMessage(a health.Alert) AlertMessage {
	return AlertMessage{
		OrderID:             a.OrderID,
		Status:              a.Status.String(),
		Department:          a.Department,
		DueDate:             a.DueDate.String(),
		DwellDays:           a.DwellDays,
		ExpectedDwellDays:   a.ExpectedDwellDays,
		RemainingLeadDays:   a.RemainingLeadDays,
		ProjectedCompletion: a.ProjectedCompletion.String(),
		DetectedOn:          a.DetectedOn.String(),
	}
}

// HealthAlertPublisher implements ports.HealthAlertPublisher. Records are
// keyed by order id so every alert of one order lands on one partition.
type HealthAlertPublisher struct {
	producer Producer
	topic    string
}

func NewHealthAlertPublisher(producer Producer, topic string) *HealthAlertPublisher {
	return &HealthAlertPublisher{producer: producer, topic: topic}
}

func (p *HealthAlertPublisher) Publish(ctx context.Context, alerts []health.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "HealthAlertPublisher.Publish")
	defer span.End()
	span.SetAttributes(
		attribute.String("kafka.topic", p.topic),
		attribute.Int("alerts.count", len(alerts)),
	)

	headers := traceHeaders(ctx)
	records := make([]*kgo.Record, 0, len(alerts))
	for _, a := range alerts {
		value, err := json.Marshal(toMessage(a))
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("encode alert for %s: %w", a.OrderID, err)
		}
		records = append(records, &kgo.Record{
			Topic:   p.topic,
			Key:     []byte(a.OrderID),
			Value:   value,
			Headers: headers,
		})
	}

	if err := p.producer.ProduceSync(ctx, records...).FirstErr(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "produce failed")
		return fmt.Errorf("produce %d alerts to %s: %w", len(records), p.topic, err)
	}

	return nil
}

// traceHeaders carries the W3C traceparent of ctx, if any.
func traceHeaders(ctx context.Context) []kgo.RecordHeader {
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)

	traceparent, ok := carrier["traceparent"]
	if !ok {
		return nil
	}
	return []kgo.RecordHeader{{Key: "traceparent", Value: []byte(traceparent)}}
}
