package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/beach-safety-advisor/internal/config"
	"github.com/couchcryptid/beach-safety-advisor/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes safety reports to a Kafka topic.
// It implements advisor.ReportPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured reports topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishReport serializes one safety report and writes it to the reports
// topic, keyed by beach so each beach's reports stay ordered on one partition.
func (w *Writer) PublishReport(ctx context.Context, report domain.SafetyReport) error {
	msg, err := serializeToMessage(report)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a SafetyReport into a Kafka message.
func serializeToMessage(report domain.SafetyReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize safety report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.BeachKey),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "verdict", Value: []byte(report.Safety.Verdict.String())},
			{Key: "generated_at", Value: []byte(report.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
