package service

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/stretchr/testify/require"
)

func TestSanitizeCredentials(t *testing.T) {
	t.Run("trims the email and keeps the password", func(t *testing.T) {
		email, password, err := SanitizeCredentials("  alice@example.com \n", " p@ss ")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", email)
		require.Equal(t, " p@ss ", password)
	})

	t.Run("strips markup", func(t *testing.T) {
		email, _, err := SanitizeCredentials("<b>alice@example.com</b>", "secret")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", email)
	})

	for name, tc := range map[string]struct{ email, password string }{
		"empty email":        {"", "secret"},
		"empty password":     {"alice@example.com", ""},
		"markup only":        {"<script></script>", "secret"},
		"not an address":     {"alice", "secret"},
		"display name form":  {"Alice <alice@example.com>", "secret"},
		"long password":      {"alice@example.com", strings.Repeat("x", MaxCredentialLength+1)},
		"long email":         {strings.Repeat("a", MaxCredentialLength) + "@example.com", "secret"},
		"whitespace address": {"alice @example.com", "secret"},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := SanitizeCredentials(tc.email, tc.password)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}

	t.Run("password at the limit is accepted", func(t *testing.T) {
		_, _, err := SanitizeCredentials("alice@example.com", strings.Repeat("é", MaxCredentialLength))
		require.NoError(t, err)
	})
}
