package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

type recordingNotifier struct {
	mu    sync.Mutex
	seen  []string
	err   error
	block chan struct{}
}

func (n *recordingNotifier) Notify(_ context.Context, a domain.Appointment) error {
	if n.block != nil {
		<-n.block
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen = append(n.seen, a.ID)
	return n.err
}

func (n *recordingNotifier) ids() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.seen...)
}

func TestDispatcher_DeliversAndDrainsOnShutdown(t *testing.T) {
	n := &recordingNotifier{}
	d := NewDispatcher(2, n, zerolog.Nop())
	d.Start(context.Background())

	for _, id := range []string{"a", "b", "c"} {
		d.Enqueue(domain.Appointment{ID: id})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}

	if got := n.ids(); len(got) != 3 {
		t.Fatalf("expected 3 notifications delivered, got %v", got)
	}
}

func TestDispatcher_NotifierErrorIsSwallowed(t *testing.T) {
	n := &recordingNotifier{err: errors.New("smtp down")}
	d := NewDispatcher(1, n, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.Appointment{ID: "x"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}
	if got := n.ids(); len(got) != 1 {
		t.Fatalf("expected one attempt, got %v", got)
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	n := &recordingNotifier{block: make(chan struct{})}
	d := NewDispatcher(1, n, zerolog.Nop())
	d.Start(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(domain.Appointment{ID: "overflow"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked with a stalled worker")
	}

	close(n.block)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = d.Shutdown(ctx)
}

func TestDispatcher_EnqueueAfterShutdownIsDropped(t *testing.T) {
	n := &recordingNotifier{}
	d := NewDispatcher(1, n, zerolog.Nop())
	d.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	d.Enqueue(domain.Appointment{ID: "late"})
	if got := n.ids(); len(got) != 0 {
		t.Fatalf("expected nothing delivered after shutdown, got %v", got)
	}
	// A second Shutdown must not panic on the closed channel.
	if err := d.Shutdown(ctx); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingNotifier{}, zerolog.Nop())
	if d.numWorkers != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, d.numWorkers)
	}
}
