package intakesdk

import (
	"context"
	"net/http"
	"net/url"
)

// SignUp registers an operator. The account stays unconfirmed until the
// emailed link is followed.
func (c *SDKClient) SignUp(ctx context.Context, req SignUpRequest) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/signup", req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusAccepted)
}

// ResendConfirmation asks for a new confirmation email.
func (c *SDKClient) ResendConfirmation(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/signup/resend", ResendConfirmationRequest{Email: email})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusAccepted)
}

// Confirm consumes a confirmation token.
func (c *SDKClient) Confirm(ctx context.Context, token string) (*MessageResponse, error) {
	path := "/api/auth/confirm?" + url.Values{"token": {token}}.Encode()
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SignIn starts a session. The session cookie is kept by the client.
func (c *SDKClient) SignIn(ctx context.Context, email, password string) (*SessionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/signin", SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var sess SessionResponse
	if err := decodeJSON(resp, &sess, http.StatusOK); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SignOut ends the session and discards the server-side form.
func (c *SDKClient) SignOut(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/signout", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Session returns the current session.
func (c *SDKClient) Session(ctx context.Context) (*SessionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/auth/session", nil)
	if err != nil {
		return nil, err
	}

	var sess SessionResponse
	if err := decodeJSON(resp, &sess, http.StatusOK); err != nil {
		return nil, err
	}
	return &sess, nil
}
