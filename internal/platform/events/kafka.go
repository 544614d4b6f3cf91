package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher produces events to a single topic with franz-go.
type KafkaPublisher struct {
	client  *kgo.Client
	topic   string
	timeout time.Duration
	logger  *slog.Logger
	metrics *Metrics
}

type KafkaOption func(*KafkaPublisher)

func WithLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) KafkaOption {
	return func(p *KafkaPublisher) {
		p.metrics = m
	}
}

// WithTimeout bounds each synchronous produce. Default 5s.
func WithTimeout(d time.Duration) KafkaOption {
	return func(p *KafkaPublisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewKafka connects a producer to brokers. Topics are auto-created when the
// cluster allows it.
func NewKafka(brokers []string, topic string, opts ...KafkaOption) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	p := &KafkaPublisher{
		client:  client,
		topic:   topic,
		timeout: 5 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Ping checks that at least one broker answers.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// EnsureTopic creates the topic when it does not exist yet. An existing topic
// is left untouched whatever its layout.
func (p *KafkaPublisher) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	resp, err := kadm.NewClient(p.client).CreateTopic(ctx, partitions, replication, nil, p.topic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("kafka: create topic %s: %w", p.topic, err)
	}
	return nil
}

// Publish produces e and waits for the broker acknowledgement.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	key, value, err := Encode(e)
	if err != nil {
		return fmt.Errorf("kafka: encode event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rec := &kgo.Record{Topic: p.topic, Key: key, Value: value}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		if p.metrics != nil {
			p.metrics.Failed.Inc()
		}
		p.logger.ErrorContext(ctx, "failed to publish travel log event",
			"type", e.Type,
			"user_id", e.UserID,
			"error", err,
		)
		return fmt.Errorf("kafka: produce: %w", err)
	}
	if p.metrics != nil {
		p.metrics.Published.WithLabelValues(string(e.Type)).Inc()
	}
	return nil
}

// Close flushes buffered records and closes the client.
func (p *KafkaPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	err := p.client.Flush(ctx)
	p.client.Close()
	return err
}

// Metrics counts publish outcomes.
type Metrics struct {
	Published *prometheus.CounterVec
	Failed    prometheus.Counter
}

func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Published: f.NewCounterVec(prometheus.CounterOpts{
			Name: "travelpoints_events_published_total",
			Help: "Travel log events acknowledged by the broker",
		}, []string{"type"}),
		Failed: f.NewCounter(prometheus.CounterOpts{
			Name: "travelpoints_events_publish_failures_total",
			Help: "Travel log events the broker did not acknowledge",
		}),
	}
}
