// Package advisory reacts to executed transactions. Delivery is
// fire-and-forget: nothing in this package can fail or slow down an order.
package advisory

import (
	"context"
	"errors"
	"log"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// Notifier receives advisory events.
type Notifier interface {
	Notify(ctx context.Context, ev model.AdvisoryEvent) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, ev model.AdvisoryEvent) error

func (f NotifierFunc) Notify(ctx context.Context, ev model.AdvisoryEvent) error {
	return f(ctx, ev)
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev model.AdvisoryEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes the composed message to the standard logger.
type LogNotifier struct {
	Currency string
}

func (n LogNotifier) Notify(_ context.Context, ev model.AdvisoryEvent) error {
	msg := Compose(ev, n.Currency)
	log.Printf("[advisory] portfolio=%s %s: %s", ev.PortfolioID, msg.Title, msg.Body)
	return nil
}
