/*
Package intakesdk provides a Go client for the client intake service.

# Overview

An SDKClient talks to one service instance. It keeps the session cookie set
by SignIn in its own cookie jar, so a signed-in SDKClient can call the
protected intake endpoints directly:

	client := intakesdk.NewSDKClient("http://localhost:8080")

	// Operator accounts must be confirmed from the emailed link before
	// signing in.
	err := client.SignUp(ctx, intakesdk.SignUpRequest{
		Email:           "operator@firm.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})

	sess, err := client.SignIn(ctx, "operator@firm.com", "secret1")

	res, err := client.SubmitClient(ctx, intakesdk.ClientDraft{
		Name:         "Jane Doe",
		Email:        "jane@acme.com",
		BusinessName: "Acme",
	})
	if res.Outcome == intakesdk.OutcomeConflict {
		fmt.Println(res.Form.Errors["email"])
	}

# Errors

Non-2xx responses are returned as *APIError carrying the HTTP status and the
server's error code:

	var apiErr *intakesdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == intakesdk.ErrorCodeUnauthorized {
		// sign in again
	}

The welcome email endpoint has its own envelope; SendEmail returns the
decoded SendEmailResponse together with an *APIError on 500.

# Thread Safety

SDKClient is safe for concurrent use. All calls made through one SDKClient
share a session, and therefore one intake form on the server.
*/
package intakesdk
