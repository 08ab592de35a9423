package intakesdk

import (
	"context"
	"errors"
	"net/http"
)

// SubmitClient runs a draft through the session's intake form. Rejections
// and conflicts are not errors; inspect Outcome and Form.Errors.
func (c *SDKClient) SubmitClient(ctx context.Context, draft ClientDraft) (*SubmitClientResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/clients", draft)
	if err != nil {
		return nil, err
	}

	var out SubmitClientResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListClients returns every client, newest first.
func (c *SDKClient) ListClients(ctx context.Context) ([]Client, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/clients", nil)
	if err != nil {
		return nil, err
	}

	var out ListClientsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Clients, nil
}

// Form returns the session's intake form with a fresh client list.
func (c *SDKClient) Form(ctx context.Context) (*FormState, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/clients/form", nil)
	if err != nil {
		return nil, err
	}

	var form FormState
	if err := decodeJSON(resp, &form, http.StatusOK); err != nil {
		return nil, err
	}
	return &form, nil
}

// SendEmail asks the service to send a welcome email. On a provider
// failure both the decoded envelope and an *APIError are returned.
func (c *SDKClient) SendEmail(ctx context.Context, email, name string) (*SendEmailResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/send-email", SendEmailRequest{Email: email, Name: name})
	if err != nil {
		return nil, err
	}

	var out SendEmailResponse
	err = decodeJSON(resp, &out, http.StatusOK)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusInternalServerError {
		return &SendEmailResponse{Status: SendEmailStatusError, Error: apiErr.Description}, err
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// View fetches a page route. A redirect is reported as the target path with
// a nil view.
func (c *SDKClient) View(ctx context.Context, path string) (*ViewResponse, string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode == http.StatusSeeOther || resp.StatusCode == http.StatusFound {
		resp.Body.Close()
		return nil, resp.Header.Get("Location"), nil
	}

	var view ViewResponse
	if err := decodeJSON(resp, &view, http.StatusOK); err != nil {
		return nil, "", err
	}
	return &view, "", nil
}
