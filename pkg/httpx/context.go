package httpx

import "context"

type ctxKey string

const (
	ctxKeySubject ctxKey = "subject"
)

// WithSubject stores the authenticated subject (operator id) on ctx.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ctxKeySubject, subject)
}

// SubjectFromContext returns the authenticated subject, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(ctxKeySubject).(string)
	return s, ok && s != ""
}
