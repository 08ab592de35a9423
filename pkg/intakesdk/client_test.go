package intakesdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSessionCookieIsKept(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var req SignInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		http.SetCookie(w, &http.Cookie{Name: "intake_session", Value: "tok", Path: "/"})
		writeJSON(w, http.StatusOK, SessionResponse{OperatorID: "op1", Email: req.Email})
	})
	mux.HandleFunc("GET /api/clients", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("intake_session"); err != nil || c.Value != "tok" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorCodeUnauthorized, ErrorDescription: "sign in required"})
			return
		}
		writeJSON(w, http.StatusOK, ListClientsResponse{Clients: []Client{{ID: "c1", Name: "Jane Doe"}}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL + "/")
	ctx := context.Background()

	_, err := client.ListClients(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeUnauthorized, apiErr.Code)

	sess, err := client.SignIn(ctx, "op@firm.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "op1", sess.OperatorID)

	clients, err := client.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
}

func TestSendEmail(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			writeJSON(w, http.StatusInternalServerError, SendEmailResponse{Status: SendEmailStatusError, Error: "provider down"})
			return
		}
		writeJSON(w, http.StatusOK, SendEmailResponse{Status: SendEmailStatusSuccess})
	}))
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)

	res, err := client.SendEmail(context.Background(), "jane@acme.com", "Jane Doe")
	require.NoError(t, err)
	require.Equal(t, SendEmailStatusSuccess, res.Status)

	fail.Store(true)
	res, err = client.SendEmail(context.Background(), "jane@acme.com", "Jane Doe")
	require.Error(t, err)
	require.Equal(t, SendEmailStatusError, res.Status)
	require.Equal(t, "provider down", res.Error)
}

func TestViewReportsRedirect(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dashboard" {
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, ViewResponse{View: "signin"})
	}))
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)

	view, target, err := client.View(context.Background(), "/dashboard")
	require.NoError(t, err)
	require.Nil(t, view)
	require.Equal(t, "/signin", target)

	view, target, err = client.View(context.Background(), "/signin")
	require.NoError(t, err)
	require.Empty(t, target)
	require.Equal(t, "signin", view.View)
}

func TestParseErrorResponseFallback(t *testing.T) {
	t.Parallel()

	err := parseErrorResponse(&http.Response{StatusCode: http.StatusBadGateway}, []byte("<html>"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Equal(t, "HTTP 502: Bad Gateway", apiErr.Description)

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}

func TestParseErrorResponseBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantDesc string
	}{
		{
			name:     "error response",
			status:   http.StatusUnauthorized,
			body:     `{"error":"unauthorized","error_description":"Sign in required"}`,
			wantCode: ErrorCodeUnauthorized,
			wantDesc: "Sign in required",
		},
		{
			name:     "send-email failure",
			status:   http.StatusInternalServerError,
			body:     `{"status":"error","error":"provider down"}`,
			wantCode: ErrorCodeServerError,
			wantDesc: "provider down",
		},
		{
			name:     "send-email bad body",
			status:   http.StatusBadRequest,
			body:     `{"status":"error","error":"invalid request body"}`,
			wantCode: ErrorCodeInvalidRequest,
			wantDesc: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErrorResponse(&http.Response{StatusCode: tt.status}, []byte(tt.body))
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.wantCode, apiErr.Code)
			require.Equal(t, tt.wantDesc, apiErr.Description)
		})
	}
}
