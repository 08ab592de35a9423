package intake_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL, _ := setupIntakeContainer(t)
	client := intakesdk.NewSDKClient(baseURL)
	ctx := context.Background()

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
}
