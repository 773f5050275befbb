//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "edumatch/pkg/platform/audit"
	"edumatch/pkg/platform/audit/publisher"
	pgstore "edumatch/pkg/platform/audit/store/postgres"
	"edumatch/pkg/testutil/containers"
)

const relayTestTopic = "edumatch.audit.test"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRelayDrainsOutboxToKafka(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pg := containers.NewPostgresContainer(t, "../../../../migrations/0001_init.sql")
	rp := containers.NewRedpandaContainer(t)

	adminClient, err := kgo.NewClient(kgo.SeedBrokers(rp.Brokers...))
	require.NoError(t, err)
	t.Cleanup(adminClient.Close)

	admin := kadm.NewClient(adminClient)
	_, err = admin.CreateTopics(ctx, 1, 1, nil, relayTestTopic)
	require.NoError(t, err)

	store := pgstore.New(pg.DB)
	require.NoError(t, store.Append(ctx, audit.Event{
		Timestamp: time.Now().UTC(),
		Action:    string(audit.EventSeatAssigned),
		SeatID:    "seat-relay",
		Candidate: "cand-relay",
	}))
	require.NoError(t, store.Append(ctx, audit.Event{
		Timestamp: time.Now().UTC(),
		Action:    string(audit.EventMatchingRun),
		Detail:    "run_id=test",
	}))

	kafka, err := publisher.NewKafka(rp.Brokers, relayTestTopic)
	require.NoError(t, err)
	t.Cleanup(kafka.Close)

	relayCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)

	relay := publisher.NewRelay(store, kafka, 100*time.Millisecond, discardLogger())
	go func() { _ = relay.Run(relayCtx) }()

	consumer := rp.Consumer(t, relayTestTopic)

	var records []*kgo.Record
	deadline := time.After(30 * time.Second)
	for len(records) < 2 {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for relayed events, got %d", len(records))
		default:
		}
		fetches := consumer.PollFetches(relayCtx)
		require.NoError(t, fetches.Err())
		records = append(records, fetches.Records()...)
	}

	var payload struct {
		Action string `json:"Action"`
		SeatID string `json:"SeatID"`
	}
	require.NoError(t, json.Unmarshal(records[0].Value, &payload))
	require.Equal(t, string(audit.EventSeatAssigned), payload.Action)
	require.Equal(t, "seat-relay", payload.SeatID)
	require.Equal(t, "seat-relay", string(records[0].Key))

	// Once confirmed, the rows are marked and not re-delivered.
	require.Eventually(t, func() bool {
		rows, err := store.Unpublished(ctx, 10)
		return err == nil && len(rows) == 0
	}, 10*time.Second, 200*time.Millisecond)
}
