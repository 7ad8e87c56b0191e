package advisory

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

const (
	// DefaultQueueSize bounds the number of undelivered events.
	DefaultQueueSize = 256
	// DefaultNotifyTimeout caps a single delivery.
	DefaultNotifyTimeout = 5 * time.Second
)

// Dispatcher delivers events to a Notifier on one background goroutine.
// Dispatch never blocks and never fails; a full queue drops the event.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	onDrop   func(model.AdvisoryEvent)
	onError  func(model.AdvisoryEvent, error)

	mu     sync.RWMutex
	closed bool
	queue  chan model.AdvisoryEvent
	done   chan struct{}
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithQueueSize sets the queue capacity.
func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan model.AdvisoryEvent, n)
		}
	}
}

// WithNotifyTimeout sets the per-delivery timeout.
func WithNotifyTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.timeout = timeout }
}

// WithDropHook is called for every event dropped because the queue was full or closed.
func WithDropHook(fn func(model.AdvisoryEvent)) DispatcherOption {
	return func(d *Dispatcher) { d.onDrop = fn }
}

// WithErrorHook is called when the notifier returns an error or panics.
func WithErrorHook(fn func(model.AdvisoryEvent, error)) DispatcherOption {
	return func(d *Dispatcher) { d.onError = fn }
}

// NewDispatcher starts the delivery goroutine. Call Close to stop it.
func NewDispatcher(n Notifier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		notifier: n,
		timeout:  DefaultNotifyTimeout,
		queue:    make(chan model.AdvisoryEvent, DefaultQueueSize),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	go d.run()
	return d
}

// Dispatch enqueues ev for delivery.
func (d *Dispatcher) Dispatch(ev model.AdvisoryEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(ev, "dispatcher closed")
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.drop(ev, "queue full")
	}
}

func (d *Dispatcher) drop(ev model.AdvisoryEvent, reason string) {
	log.Printf("[advisory] dropped %s event for portfolio %s: %s", ev.Type, ev.PortfolioID, reason)
	if d.onDrop != nil {
		d.onDrop(ev)
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev model.AdvisoryEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[advisory] notifier panic for transaction %s: %v", ev.TransactionID, r)
			if d.onError != nil {
				d.onError(ev, fmt.Errorf("notifier panic: %v", r))
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, ev); err != nil {
		log.Printf("[advisory] notify failed for transaction %s: %v", ev.TransactionID, err)
		if d.onError != nil {
			d.onError(ev, err)
		}
	}
}

// Close stops accepting events, delivers what is already queued and
// waits for the worker to exit or ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
