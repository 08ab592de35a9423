package intakesdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeConflict       = "conflict"
	ErrorCodeForbidden      = "forbidden"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeServerError    = "server_error"
	ErrorCodeRateLimited    = "rate_limit_exceeded"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// errorEnvelope covers both error bodies the service writes: ErrorResponse
// and the send-email envelope, whose "error" field holds a message rather
// than a code.
type errorEnvelope struct {
	Status           string `json:"status"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// parseErrorResponse turns a non-2xx response into an *APIError. It returns
// nil for 2xx.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		switch {
		case env.Status == SendEmailStatusError:
			code := ErrorCodeServerError
			if resp.StatusCode == http.StatusBadRequest {
				code = ErrorCodeInvalidRequest
			}
			return &APIError{
				StatusCode:  resp.StatusCode,
				Code:        code,
				Description: env.Error,
			}
		case env.Status == "" && env.Error != "":
			return &APIError{
				StatusCode:  resp.StatusCode,
				Code:        env.Error,
				Description: env.ErrorDescription,
			}
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
