package http

import (
	"net/http"

	"github.com/aussiebroadwan/intake/internal/intake/gate"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

// ViewsHandler serves the page routes as JSON view models. Navigation
// policy is enforced by the gate middleware before these run.
type ViewsHandler struct {
	IntakeService *service.IntakeService
}

// HandleLanding handles GET /
//
//	@Summary		Landing
//	@Description	Always redirects: to /dashboard with a session, otherwise to /signin.
//	@Tags			Views
//	@Success		303
//	@Router			/ [get].
func (h *ViewsHandler) HandleLanding(w http.ResponseWriter, r *http.Request) {
	httpx.Redirect(w, r, gate.Decide(gate.PathLanding, hasSession(r)).Target)
}

// HandleSignIn handles GET /signin
//
//	@Summary		Sign-in view
//	@Description	Redirects to /dashboard when a session is present.
//	@Tags			Views
//	@Produce		json
//	@Success		200	{object}	intakesdk.ViewResponse
//	@Success		303
//	@Router			/signin [get].
func (h *ViewsHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, intakesdk.ViewResponse{View: "signin"})
}

// HandleSignUp handles GET /signup
//
//	@Summary		Sign-up view
//	@Description	Redirects to /dashboard when a session is present.
//	@Tags			Views
//	@Produce		json
//	@Success		200	{object}	intakesdk.ViewResponse
//	@Success		303
//	@Router			/signup [get].
func (h *ViewsHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, intakesdk.ViewResponse{View: "signup"})
}

// HandleDashboard handles GET /dashboard
//
//	@Summary		Dashboard view
//	@Description	The operator's intake form and the shared client list. Redirects to /signin without a session.
//	@Tags			Views
//	@Produce		json
//	@Success		200	{object}	intakesdk.ViewResponse
//	@Success		303
//	@Security		SessionCookie
//	@Router			/dashboard [get].
func (h *ViewsHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, ok := SessionFromContext(ctx)
	if !ok {
		// Unreachable behind the gate.
		httpx.Redirect(w, r, gate.PathSignIn)
		return
	}

	form, err := h.IntakeService.Form(ctx, sess.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load intake form", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, intakesdk.ErrorResponse{
			Error:            intakesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to load dashboard",
		})
		return
	}

	view := toFormState(form)
	httpx.WriteJSON(w, http.StatusOK, intakesdk.ViewResponse{
		View:  "dashboard",
		Email: sess.Email,
		Form:  &view,
	})
}
