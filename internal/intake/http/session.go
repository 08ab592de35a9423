package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

// SessionCookieName carries the signed session token.
const SessionCookieName = "intake_session"

type sessionKey struct{}

// SessionFromContext returns the session resolved for the request, if any.
func SessionFromContext(ctx context.Context) (service.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(service.Session)
	return s, ok
}

func hasSession(r *http.Request) bool {
	_, ok := SessionFromContext(r.Context())
	return ok
}

// sessionToken reads the session cookie, falling back to a bearer token.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// sessionMiddleware resolves the session synchronously before any handler
// runs. Invalid tokens are treated as no session.
func (r *Router) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		token := sessionToken(req)
		if token == "" || r.AuthService == nil {
			next.ServeHTTP(w, req)
			return
		}

		sess, err := r.AuthService.Authenticate(token)
		if err != nil {
			slogx.FromContext(req.Context()).Debug("session rejected", "error", err)
			next.ServeHTTP(w, req)
			return
		}

		ctx := context.WithValue(req.Context(), sessionKey{}, sess)
		ctx = httpx.WithSubject(ctx, sess.OperatorID)
		ctx = slogx.With(ctx, "operator_id", sess.OperatorID)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requireSession answers 401 for API calls without a session.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hasSession(r) {
			httpx.WriteJSON(w, http.StatusUnauthorized, intakesdk.ErrorResponse{
				Error:            intakesdk.ErrorCodeUnauthorized,
				ErrorDescription: "Sign in required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
