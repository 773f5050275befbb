package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "edumatch/pkg/platform/audit"
	"edumatch/pkg/platform/audit/store/memory"
)

func TestWorkerDrainsInbox(t *testing.T) {
	store := memory.New()
	inbox := make(chan audit.Event, 4)
	w := New(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	inbox <- audit.Event{Action: string(audit.EventSeatMinted), SeatID: "s-1"}
	inbox <- audit.Event{Action: string(audit.EventSeatBurned), SeatID: "s-1"}

	require.Eventually(t, func() bool {
		return len(store.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	events := store.Events()
	assert.Equal(t, string(audit.EventSeatMinted), events[0].Action)
	assert.Len(t, store.ByAction(audit.EventSeatBurned), 1)
}
