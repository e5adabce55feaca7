package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const deliveryTimeout = 30 * time.Second

// Dispatcher runs notifications off the request path. A single worker drains
// a buffered queue; when the queue is full the payload gets its own
// goroutine so Dispatch never blocks.
type Dispatcher struct {
	notifier QuoteNotifier
	queue    chan QuotePayload

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts the worker.
func NewDispatcher(notifier QuoteNotifier, buffer int) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan QuotePayload, buffer),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for p := range d.queue {
		d.deliver(p)
	}
}

// Dispatch schedules p for delivery and returns immediately.
func (d *Dispatcher) Dispatch(p QuotePayload) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Warn().Str("quote_id", p.ID.String()).Msg("dispatcher closed, quote notification dropped")
		return
	}

	select {
	case d.queue <- p:
	default:
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.deliver(p)
		}()
	}
}

func (d *Dispatcher) deliver(p QuotePayload) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := d.notifier.NotifyNewQuote(ctx, p); err != nil {
		log.Error().Err(err).
			Str("quote_id", p.ID.String()).
			Str("email", p.Email).
			Msg("quote notification failed")
		return
	}
	log.Debug().Str("quote_id", p.ID.String()).Msg("quote notification sent")
}

// Close stops accepting payloads and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}
