//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"travelpoints/internal/platform/events"
	"travelpoints/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda  *containers.RedpandaContainer
	publisher *events.KafkaPublisher
	topic     string
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
	s.topic = "travel-log-events-test"

	p, err := events.NewKafka([]string{s.redpanda.Broker}, s.topic,
		events.WithMetrics(events.NewMetricsWith(prometheus.NewRegistry())))
	s.Require().NoError(err)
	s.publisher = p
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.publisher != nil {
		s.NoError(s.publisher.Close())
	}
}

func (s *KafkaPublisherSuite) TestPublishIsConsumableInOrder() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.Require().NoError(s.publisher.Ping(ctx))
	s.Require().NoError(s.publisher.EnsureTopic(ctx, 1, 1))
	s.Require().NoError(s.publisher.EnsureTopic(ctx, 1, 1), "existing topic is not an error")

	userID := "4b2d8a0e-7a61-4a7c-9e38-1f0d9c0e3a11"
	sent := []events.Event{
		{Type: events.CountryAdded, UserID: userID, CountryCode: "JP", OccurredAt: time.Now().UTC()},
		{Type: events.CityAdded, UserID: userID, CountryCode: "JP", CityID: "tokyo", OccurredAt: time.Now().UTC()},
	}
	for _, e := range sent {
		s.Require().NoError(s.publisher.Publish(ctx, e))
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(s.topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var got []events.Event
	for len(got) < len(sent) {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			var e events.Event
			s.Require().NoError(json.Unmarshal(r.Value, &e))
			s.Equal(userID, string(r.Key))
			got = append(got, e)
		})
	}

	s.Equal(events.CountryAdded, got[0].Type)
	s.Equal(events.CityAdded, got[1].Type)
	s.Equal("tokyo", got[1].CityID)
}
