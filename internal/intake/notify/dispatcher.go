package notify

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/intake/pkg/slogx"
)

// Dispatcher runs welcome notifications in the background. The caller gets a
// channel carrying the single result but is never required to read it; the
// result is always logged.
type Dispatcher struct {
	notifier WelcomeNotifier
	onResult func(error)
	wg       sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithResultHook is called with every send result, after logging.
func WithResultHook(fn func(error)) DispatcherOption {
	return func(d *Dispatcher) { d.onResult = fn }
}

func NewDispatcher(n WelcomeNotifier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{notifier: n}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch sends the welcome email on a new goroutine. The send keeps the
// values of ctx (logger, request id) but not its cancellation, so it outlives
// the request that triggered it. The returned channel is buffered and closed
// after the result is delivered.
func (d *Dispatcher) Dispatch(ctx context.Context, email, name string) <-chan error {
	result := make(chan error, 1)
	ctx = context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(result)

		err := d.notifier.NotifyWelcome(ctx, email, name)
		if err != nil {
			slogx.FromContext(ctx).Error("welcome email failed", "email", email, "error", err)
		} else {
			slogx.FromContext(ctx).Info("welcome email sent", "email", email)
		}
		if d.onResult != nil {
			d.onResult(err)
		}
		result <- err
	}()

	return result
}

// Wait blocks until in-flight sends finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
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
