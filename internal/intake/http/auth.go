package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

// AuthHandler serves operator sign-up, confirmation and sessions.
type AuthHandler struct {
	AuthService   *service.AuthService
	IntakeService *service.IntakeService
	SecureCookies bool
}

// authStatus maps auth errors to status codes and error codes.
func authStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusBadRequest, intakesdk.ErrorCodeInvalidRequest
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyConfirmed):
		return http.StatusConflict, intakesdk.ErrorCodeConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidSession):
		return http.StatusUnauthorized, intakesdk.ErrorCodeUnauthorized
	case errors.Is(err, service.ErrNotConfirmed):
		return http.StatusForbidden, intakesdk.ErrorCodeForbidden
	default:
		return http.StatusInternalServerError, intakesdk.ErrorCodeServerError
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := authStatus(err)
	if status == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("auth request failed", "error", err)
	}
	httpx.WriteJSON(w, status, intakesdk.ErrorResponse{
		Error:            code,
		ErrorDescription: service.AuthMessage(err),
	})
}

func writeInvalidBody(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, intakesdk.ErrorResponse{
		Error:            intakesdk.ErrorCodeInvalidRequest,
		ErrorDescription: "Invalid JSON in request body",
	})
}

// HandleSignUp handles POST /api/auth/signup
//
//	@Summary		Create an operator account
//	@Description	Creates an unconfirmed account and emails a confirmation link. Passwords must match and be at least 6 characters.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		intakesdk.SignUpRequest		true	"Sign-up request"
//	@Success		202		{object}	intakesdk.MessageResponse	"confirmation email sent"
//	@Failure		400		{object}	intakesdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	intakesdk.ErrorResponse		"email already registered"
//	@Failure		429		{object}	intakesdk.ErrorResponse		"rate limited"
//	@Router			/api/auth/signup [post].
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req intakesdk.SignUpRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidBody(w)
		return
	}

	if err := h.AuthService.SignUp(r.Context(), req.Email, req.Password, req.ConfirmPassword); err != nil {
		writeAuthError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, intakesdk.MessageResponse{
		Message: "Check your email to confirm your account",
	})
}

// HandleResend handles POST /api/auth/signup/resend
//
//	@Summary		Resend the confirmation email
//	@Description	Replaces any pending confirmation link. Unknown addresses are accepted silently.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		intakesdk.ResendConfirmationRequest	true	"Email address"
//	@Success		202		{object}	intakesdk.MessageResponse
//	@Failure		400		{object}	intakesdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	intakesdk.ErrorResponse	"already confirmed"
//	@Router			/api/auth/signup/resend [post].
func (h *AuthHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	var req intakesdk.ResendConfirmationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidBody(w)
		return
	}

	if err := h.AuthService.ResendConfirmation(r.Context(), req.Email); err != nil {
		writeAuthError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, intakesdk.MessageResponse{
		Message: "Confirmation email resent",
	})
}

// HandleConfirm handles GET /api/auth/confirm
//
//	@Summary		Confirm an operator account
//	@Description	Consumes the token from the emailed link.
//	@Tags			Auth
//	@Produce		json
//	@Param			token	query		string	true	"Confirmation token"
//	@Success		200		{object}	intakesdk.MessageResponse
//	@Failure		400		{object}	intakesdk.ErrorResponse	"invalid or expired token"
//	@Router			/api/auth/confirm [get].
func (h *AuthHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.AuthService.Confirm(r.Context(), r.URL.Query().Get("token")); err != nil {
		writeAuthError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, intakesdk.MessageResponse{
		Message: "Email confirmed. You can now sign in.",
	})
}

// HandleSignIn handles POST /api/auth/signin
//
//	@Summary		Sign in
//	@Description	Starts a session for a confirmed operator and sets the session cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		intakesdk.SignInRequest		true	"Credentials"
//	@Success		200		{object}	intakesdk.SessionResponse
//	@Failure		400		{object}	intakesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	intakesdk.ErrorResponse	"invalid credentials"
//	@Failure		403		{object}	intakesdk.ErrorResponse	"email not confirmed"
//	@Router			/api/auth/signin [post].
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req intakesdk.SignInRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidBody(w)
		return
	}

	sess, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, r, err)
		return
	}

	setSessionCookie(w, sess.Token, sess.ExpiresAt, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, intakesdk.SessionResponse{
		OperatorID:  sess.OperatorID,
		Email:       sess.Email,
		ExpiresAt:   sess.ExpiresAt,
		AccessToken: sess.Token,
	})
}

// HandleSignOut handles POST /api/auth/signout
//
//	@Summary		Sign out
//	@Description	Revokes the session token, clears the session cookie and discards the session's intake form.
//	@Tags			Auth
//	@Success		204
//	@Router			/api/auth/signout [post].
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if sess, ok := SessionFromContext(ctx); ok {
		h.AuthService.SignOut(ctx, sess)
		if h.IntakeService != nil {
			h.IntakeService.Discard(sess.ID)
		}
	}

	clearSessionCookie(w, h.SecureCookies)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSession handles GET /api/auth/session
//
//	@Summary		Current session
//	@Tags			Auth
//	@Produce		json
//	@Security		SessionCookie
//	@Success		200	{object}	intakesdk.SessionResponse
//	@Failure		401	{object}	intakesdk.ErrorResponse	"no session"
//	@Router			/api/auth/session [get].
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, intakesdk.SessionResponse{
		OperatorID: sess.OperatorID,
		Email:      sess.Email,
		ExpiresAt:  sess.ExpiresAt,
	})
}
