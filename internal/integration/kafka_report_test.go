//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkaadapter "github.com/couchcryptid/beach-safety-advisor/internal/adapter/kafka"
	"github.com/couchcryptid/beach-safety-advisor/internal/config"
	"github.com/couchcryptid/beach-safety-advisor/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testReportsTopic = "test-beach-safety-reports"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("beach-safety-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial kafka broker")
	defer conn.Close()

	require.NoError(t, conn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic %s", topic)
}

// TestWriterPublishesReport verifies that kafka.Writer round-trips a safety
// report through a real broker with the expected key and headers.
func TestWriterPublishesReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testReportsTopic)

	cfg := &config.Config{
		KafkaBrokers:      []string{broker},
		KafkaReportsTopic: testReportsTopic,
	}

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	generatedAt := time.Date(2026, 7, 4, 17, 30, 0, 0, time.UTC)
	report := domain.SafetyReport{
		Beach:     "Rockaway Beach",
		BeachKey:  "rockaway beach",
		Latitude:  40.586,
		Longitude: -73.8114,
		Weather: domain.WeatherSummary{
			TemperatureF:  75,
			WindSpeedMph:  22,
			Condition:     "Thunderstorm",
			Description:   "thunderstorm with heavy rain",
			CloudCoverPct: 95,
		},
		Safety: domain.SafetySummary{
			Verdict: domain.VerdictDangerous,
			Recommendations: []string{
				"Always swim near a lifeguard and obey posted flags. Lifeguards are typically on duty 10am-6pm during beach season.",
				"Thunderstorm activity: exit the water immediately and seek shelter away from the beach.",
			},
		},
		GeneratedAt: generatedAt,
	}

	require.NoError(t, writer.PublishReport(ctx, report))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testReportsTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from reports topic")

	assert.Equal(t, []byte("rockaway beach"), msg.Key)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "DANGEROUS", headers["verdict"])
	assert.Equal(t, generatedAt.Format(time.RFC3339), headers["generated_at"])

	var decoded domain.SafetyReport
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, report, decoded)
}

// TestWriterKeysReportsByBeach verifies that reports for different beaches
// carry distinct keys while repeated reports for one beach share a key.
func TestWriterKeysReportsByBeach(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testReportsTopic)

	cfg := &config.Config{
		KafkaBrokers:      []string{broker},
		KafkaReportsTopic: testReportsTopic,
	}

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	for _, key := range []string{"coney island", "coney island", "orchard beach"} {
		report := domain.SafetyReport{
			BeachKey:    key,
			Safety:      domain.SafetySummary{Verdict: domain.VerdictGood},
			GeneratedAt: time.Now().UTC(),
		}
		require.NoError(t, writer.PublishReport(ctx, report))
	}

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testReportsTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	keys := make([]string, 0, 3)
	for len(keys) < 3 {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err)
		keys = append(keys, string(msg.Key))
	}

	assert.Equal(t, []string{"coney island", "coney island", "orchard beach"}, keys)
}
