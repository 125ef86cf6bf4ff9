package directory_test

import (
	"errors"
	"testing"

	"github.com/aussiebroadwan/directory/pkg/directorysdk"
	"github.com/stretchr/testify/require"
)

// TestDirectoryAPI drives count, find and validate through the SDK, the same
// way a peer directory on the remote backend would.
func TestDirectoryAPI(t *testing.T) {
	baseURL, cleanup := setupDirectoryContainer(t)
	defer cleanup()

	client := directoryClient(baseURL, directorysdk.WithToken(apiToken))

	t.Run("count", func(t *testing.T) {
		n, err := client.Count(t.Context())
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})

	var aliceID string
	t.Run("validate", func(t *testing.T) {
		account, err := client.Validate(t.Context(), userEmail, userPassword)
		require.NoError(t, err)
		require.Equal(t, userEmail, account["email"])
		require.Equal(t, "Alice Liddell", account["name"])
		require.Equal(t, "en-AU", account["locale"])
		require.Contains(t, account["roles"], "user")
		aliceID, _ = account["sub"].(string)
		require.NotEmpty(t, aliceID)

		admin, err := client.Validate(t.Context(), adminEmail, adminPassword)
		require.NoError(t, err)
		require.Contains(t, admin["roles"], "admin")
	})

	t.Run("rejected credentials look alike", func(t *testing.T) {
		_, wrongPassword := client.Validate(t.Context(), userEmail, "nope")
		_, unknownUser := client.Validate(t.Context(), "nobody@example.com", userPassword)

		var a, b *directorysdk.APIError
		require.True(t, errors.As(wrongPassword, &a))
		require.True(t, errors.As(unknownUser, &b))
		require.Equal(t, 401, a.StatusCode)
		require.Equal(t, *a, *b)
	})

	t.Run("find", func(t *testing.T) {
		account, err := client.Find(t.Context(), aliceID)
		require.NoError(t, err)
		require.Equal(t, userEmail, account["email"])

		account, err = client.Find(t.Context(), userEmail)
		require.NoError(t, err)
		require.Equal(t, aliceID, account["sub"])

		account, err = client.FindByEmail(t.Context(), userEmail)
		require.NoError(t, err)
		require.Equal(t, aliceID, account["sub"])

		_, err = client.Find(t.Context(), "missing")
		require.ErrorIs(t, err, directorysdk.ErrNotFound)
	})

	t.Run("token required", func(t *testing.T) {
		_, err := directoryClient(baseURL).Count(t.Context())
		var apiErr *directorysdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, 401, apiErr.StatusCode)
		require.Equal(t, "invalid_token", apiErr.Code)
	})
}
