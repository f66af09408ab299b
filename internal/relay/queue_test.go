package relay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_PreservesOrder(t *testing.T) {
	q := NewQueue()

	q.Notify(Status("Fetching app details..."))
	q.Notify(Progress(10))
	q.Notify(Text("Analyzing app: com.whatsapp"))
	q.Notify(Progress(100))
	q.Notify(Success("done"))
	q.Notify(EnableTrigger())
	q.Close()

	var drained []Message
	q.Drain(context.Background(), func(msg Message) {
		drained = append(drained, msg)
	})

	require.Len(t, drained, 6)
	assert.Equal(t, KindStatus, drained[0].Kind)
	assert.Equal(t, 10, drained[1].Progress)
	assert.Equal(t, "Analyzing app: com.whatsapp", drained[2].Text)
	assert.Equal(t, 100, drained[3].Progress)
	assert.Equal(t, KindSuccess, drained[4].Kind)
	assert.Equal(t, KindEnableTrigger, drained[5].Kind)
}

func TestQueue_ConcurrentProducer(t *testing.T) {
	q := NewQueue()
	const n = 500

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Notify(Progress(i))
		}
		q.Close()
	}()

	var drained []Message
	q.Drain(context.Background(), func(msg Message) {
		drained = append(drained, msg)
	})
	wg.Wait()

	require.Len(t, drained, n)
	for i, msg := range drained {
		assert.Equal(t, i, msg.Progress)
	}
}

func TestQueue_DrainStopsOnContextCancel(t *testing.T) {
	q := NewQueue()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		q.Drain(ctx, func(Message) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drain did not return after cancel")
	}
}

func TestQueue_NotifyAfterCloseDropped(t *testing.T) {
	q := NewQueue()
	q.Notify(Text("kept"))
	q.Close()
	q.Notify(Text("dropped"))

	var drained []Message
	q.Drain(context.Background(), func(msg Message) {
		drained = append(drained, msg)
	})

	require.Len(t, drained, 1)
	assert.Equal(t, "kept", drained[0].Text)
}
