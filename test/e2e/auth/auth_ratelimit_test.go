//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tollgate/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies that /api/login is rate limited per
// IP and email. The strict limit is 5 req/min.
func TestRateLimitLoginEndpoint(t *testing.T) {
	c := setupAuthContainerWithDefaultRateLimits(t)
	client := authsdk.NewSDKClient(c.BaseURL)

	for i := range 5 {
		_, err := client.Login(t.Context(), userEmail, "wrong-password")
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials, "request %d should not be rate limited", i+1)
	}

	_, err := client.Login(t.Context(), userEmail, "wrong-password")
	assertStatus(t, err, http.StatusTooManyRequests, "6th login")

	// A different email has its own bucket.
	_, err = client.Login(t.Context(), adminEmail, demoPassword)
	require.NoError(t, err)
}
