package http

import (
	"net/http"

	"github.com/aussiebroadwan/intake/internal/intake/metrics"
	"github.com/aussiebroadwan/intake/internal/intake/notify"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

// SendEmailHandler sends the welcome email synchronously and reports the
// provider's answer.
type SendEmailHandler struct {
	Notifier notify.WelcomeNotifier
	Metrics  *metrics.Metrics
}

// ServeHTTP handles POST /api/send-email
//
//	@Summary		Send the welcome email
//	@Description	Renders the fixed welcome template for name and hands it to the email provider addressed to email. Nothing is retried.
//	@Tags			Notifications
//	@Accept			json
//	@Produce		json
//	@Security		SessionCookie
//	@Param			request	body		intakesdk.SendEmailRequest	true	"Recipient"
//	@Success		200		{object}	intakesdk.SendEmailResponse	"status: success"
//	@Failure		400		{object}	intakesdk.SendEmailResponse	"status: error, malformed body"
//	@Failure		401		{object}	intakesdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	intakesdk.SendEmailResponse	"status: error"
//	@Router			/api/send-email [post].
func (h *SendEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req intakesdk.SendEmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, intakesdk.SendEmailResponse{
			Status: intakesdk.SendEmailStatusError,
			Error:  "invalid request body",
		})
		return
	}

	err := h.Notifier.NotifyWelcome(ctx, req.Email, req.Name)
	if h.Metrics != nil {
		h.Metrics.ObserveNotification(err)
	}
	if err != nil {
		log.Error("welcome email failed", "email", req.Email, "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, intakesdk.SendEmailResponse{
			Status: intakesdk.SendEmailStatusError,
			Error:  err.Error(),
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, intakesdk.SendEmailResponse{Status: intakesdk.SendEmailStatusSuccess})
}
