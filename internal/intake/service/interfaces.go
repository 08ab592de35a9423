package service

import "context"

// Dispatcher starts a welcome notification without waiting for it. The
// channel yields the single send result.
type Dispatcher interface {
	Dispatch(ctx context.Context, email, name string) <-chan error
}

// ConfirmationMailer sends account confirmation links.
type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, email, link string) error
}
