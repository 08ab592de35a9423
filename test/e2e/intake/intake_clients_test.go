package intake_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/stretchr/testify/require"
)

func TestClientIntakeFlow(t *testing.T) {
	baseURL, container := setupIntakeContainer(t)
	client := signedInOperator(t, baseURL, container, "intake@example.com")
	ctx := context.Background()

	jane := intakesdk.ClientDraft{Name: "Jane Doe", Email: "jane@acme.com", BusinessName: "Acme"}

	t.Run("valid client is recorded", func(t *testing.T) {
		res, err := client.SubmitClient(ctx, jane)
		require.NoError(t, err)
		require.Equal(t, intakesdk.OutcomeCreated, res.Outcome)
		require.Empty(t, res.Form.Errors)
		require.True(t, res.Form.BannerVisible)
		require.Empty(t, res.Form.Draft.Name)

		clients, err := client.ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		require.Equal(t, "jane@acme.com", clients[0].Email)
		require.NotEmpty(t, clients[0].ID)
	})

	t.Run("welcome email is sent", func(t *testing.T) {
		require.Eventually(t, func() bool {
			form, err := client.Form(ctx)
			return err == nil && form.Notification == "succeeded"
		}, defaultWait, defaultTick)
	})

	t.Run("duplicate email is a field error", func(t *testing.T) {
		res, err := client.SubmitClient(ctx, intakesdk.ClientDraft{
			Name:         "Janet Doe",
			Email:        "jane@acme.com",
			BusinessName: "Other Co",
		})
		require.NoError(t, err)
		require.Equal(t, intakesdk.OutcomeConflict, res.Outcome)
		require.Equal(t, "A client with this email already exists", res.Form.Errors["email"])

		clients, err := client.ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, clients, 1)
	})

	t.Run("invalid draft never reaches the store", func(t *testing.T) {
		res, err := client.SubmitClient(ctx, intakesdk.ClientDraft{
			Name:         "Jo",
			Email:        "not-an-email",
			BusinessName: "  ",
		})
		require.NoError(t, err)
		require.Equal(t, intakesdk.OutcomeRejected, res.Outcome)
		require.Equal(t, "Name must be between 3 and 100 characters", res.Form.Errors["name"])
		require.Equal(t, "Please enter a valid email address", res.Form.Errors["email"])
		require.Equal(t, "Business name is required", res.Form.Errors["business_name"])

		clients, err := client.ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, clients, 1)
	})
}

func TestSendEmailWithoutProvider(t *testing.T) {
	baseURL, container := setupIntakeContainer(t)
	client := signedInOperator(t, baseURL, container, "mailer@example.com")

	res, err := client.SendEmail(context.Background(), "jane@acme.com", "Jane Doe")
	require.NoError(t, err)
	require.Equal(t, intakesdk.SendEmailStatusSuccess, res.Status)
}
