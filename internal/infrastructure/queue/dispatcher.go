package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
	"github.com/vertex-clinic/booking-api/internal/core/ports"
	"github.com/vertex-clinic/booking-api/internal/infrastructure/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// Dispatcher delivers appointment notifications on background workers so the
// booking request never waits for the mail server. Failures are logged and
// counted; there is no retry.
type Dispatcher struct {
	jobs       chan domain.Appointment
	notifier   ports.Notifier
	log        zerolog.Logger
	numWorkers int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		jobs:       make(chan domain.Appointment, channelBuffer),
		notifier:   notifier,
		log:        log,
		numWorkers: numWorkers,
	}
}

// Start launches the worker goroutines. Workers exit when ctx is cancelled or
// after Shutdown has drained the queue.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

// Enqueue hands an appointment to the workers without blocking. When the
// buffer is full or the dispatcher is shut down the notification is dropped.
func (d *Dispatcher) Enqueue(a domain.Appointment) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(a, "dispatcher closed")
		return
	}

	select {
	case d.jobs <- a:
		metrics.NotificationQueueDepth.Set(float64(len(d.jobs)))
	default:
		d.drop(a, "queue full")
	}
}

// Shutdown stops accepting work and waits for queued notifications to be
// sent, or for ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) drop(a domain.Appointment, reason string) {
	metrics.NotificationsTotal.WithLabelValues(metrics.NotificationDropped).Inc()
	d.log.Warn().
		Str("appointment_id", a.ID).
		Str("reason", reason).
		Msg("notification dropped")
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-d.jobs:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.Set(float64(len(d.jobs)))
			d.deliver(ctx, id, a)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, a domain.Appointment) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.notifier.Notify(sendCtx, a); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.NotificationFailed).Inc()
		d.log.Error().Err(err).
			Str("appointment_id", a.ID).
			Int("worker_id", workerID).
			Msg("notification failed")
		return
	}

	metrics.NotificationsTotal.WithLabelValues(metrics.NotificationSent).Inc()
	d.log.Debug().
		Str("appointment_id", a.ID).
		Int("worker_id", workerID).
		Msg("notification sent")
}
