package http

import (
	"net/http"

	"github.com/aussiebroadwan/intake/internal/intake/metrics"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

// ClientsHandler serves the intake form and the client list.
type ClientsHandler struct {
	IntakeService *service.IntakeService
	Metrics       *metrics.Metrics
}

// HandleSubmit handles POST /api/clients
//
//	@Summary		Submit a client
//	@Description	Runs the draft through the session's intake form. Validation failures and duplicate email or business name are reported in form.errors with outcome "rejected" or "conflict"; they are not HTTP errors.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		SessionCookie
//	@Param			request	body		intakesdk.ClientDraft			true	"Client draft"
//	@Success		200		{object}	intakesdk.SubmitClientResponse	"outcome and resulting form"
//	@Failure		400		{object}	intakesdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	intakesdk.ErrorResponse			"error, error_description"
//	@Router			/api/clients [post].
func (h *ClientsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	var req intakesdk.ClientDraft
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, intakesdk.ErrorResponse{
			Error:            intakesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	outcome, form, err := h.IntakeService.Submit(ctx, sess.ID, toDraft(req))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to submit client", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, intakesdk.ErrorResponse{
			Error:            intakesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to submit client",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, intakesdk.SubmitClientResponse{
		Outcome: string(outcome),
		Form:    toFormState(form),
	})
}

// HandleList handles GET /api/clients
//
//	@Summary		List clients
//	@Description	Every recorded client, newest first.
//	@Tags			Clients
//	@Produce		json
//	@Security		SessionCookie
//	@Success		200	{object}	intakesdk.ListClientsResponse
//	@Failure		401	{object}	intakesdk.ErrorResponse	"error, error_description"
//	@Failure		503	{object}	intakesdk.ErrorResponse	"store unavailable"
//	@Router			/api/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.IntakeService.ListClients(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list clients", "error", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, intakesdk.ErrorResponse{
			Error:            intakesdk.ErrorCodeServerError,
			ErrorDescription: "Client list is unavailable",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, intakesdk.ListClientsResponse{Clients: toClients(list)})
}

// HandleForm handles GET /api/clients/form
//
//	@Summary		Current intake form
//	@Description	The session's form state with a freshly loaded client list. A list failure yields an empty list.
//	@Tags			Clients
//	@Produce		json
//	@Security		SessionCookie
//	@Success		200	{object}	intakesdk.FormState
//	@Failure		401	{object}	intakesdk.ErrorResponse	"error, error_description"
//	@Router			/api/clients/form [get].
func (h *ClientsHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := SessionFromContext(ctx)

	form, err := h.IntakeService.Form(ctx, sess.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load intake form", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, intakesdk.ErrorResponse{
			Error:            intakesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to load form",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toFormState(form))
}
