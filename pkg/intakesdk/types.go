package intakesdk

import "time"

// ErrorResponse is the JSON body of every non-2xx response except
// POST /api/send-email.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Clients  int64  `json:"clients"`
}

// ============================================================================
// Notification
// ============================================================================

type SendEmailRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SendEmailResponse is {"status":"success"} or {"status":"error","error":...}.
type SendEmailResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	SendEmailStatusSuccess = "success"
	SendEmailStatusError   = "error"
)

// ============================================================================
// Intake
// ============================================================================

type ClientDraft struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
}

type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BusinessName string    `json:"business_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// FormState is the server-held intake form of the caller's session.
type FormState struct {
	Draft         ClientDraft       `json:"draft"`
	Errors        map[string]string `json:"errors"`
	State         string            `json:"state"`
	Submitting    bool              `json:"submitting"`
	BannerVisible bool              `json:"banner_visible"`
	Clients       []Client          `json:"clients"`
	Notice        string            `json:"notice,omitempty"`
	Notification  string            `json:"notification"`
}

// Submission outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeFailed   = "failed"
	OutcomeIgnored  = "ignored"
)

type SubmitClientResponse struct {
	Outcome string    `json:"outcome"`
	Form    FormState `json:"form"`
}

type ListClientsResponse struct {
	Clients []Client `json:"clients"`
}

// ============================================================================
// Operator accounts
// ============================================================================

type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ResendConfirmationRequest struct {
	Email string `json:"email"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	OperatorID  string    `json:"operator_id"`
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expires_at"`
	AccessToken string    `json:"access_token,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ViewResponse is the view model returned by the page routes.
type ViewResponse struct {
	View    string     `json:"view"`
	Email   string     `json:"email,omitempty"`
	Form    *FormState `json:"form,omitempty"`
	Message string     `json:"message,omitempty"`
}
