package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccountClaims(t *testing.T) {
	acc := Account{
		ID:            "alice@example.com",
		Email:         "alice@example.com",
		EmailVerified: true,
		Name:          "Alice Liddell",
		Locale:        "en-AU",
		Address:       &Address{Locality: "Sydney"},
		Roles:         []string{"admin"},
	}

	claims := acc.Claims()
	require.Equal(t, "alice@example.com", claims["sub"])
	require.Equal(t, true, claims["email_verified"])
	require.Equal(t, "en-AU", claims["locale"])
	require.Equal(t, Address{Locality: "Sydney"}, claims["address"])
	require.Equal(t, []string{"admin"}, claims["roles"])
	require.Equal(t, []string{}, claims["groups"])

	require.NotContains(t, claims, "picture")
	require.NotContains(t, claims, "phone_number_verified")
	require.NotContains(t, claims, "updated_at")
}

func TestAccountHasRole(t *testing.T) {
	acc := Account{Roles: []string{"user", "admin"}}
	require.True(t, acc.HasRole("admin"))
	require.False(t, acc.HasRole("Admin"))
	require.False(t, Account{}.HasRole("admin"))
}

func TestTransientStoreError(t *testing.T) {
	cause := errors.New("database is locked")
	err := fmt.Errorf("create role: %w", ErrTransient("roles.create", cause))

	require.True(t, IsTransient(err))
	require.ErrorIs(t, err, cause)
	require.False(t, IsTransient(ErrConflict("role %q already exists", "admin")))
}
