package backend

import (
	"testing"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/stretchr/testify/require"
)

func TestMapRemoteAccount_EmailSources(t *testing.T) {
	t.Run("flat email wins", func(t *testing.T) {
		acc, err := MapRemoteAccount(map[string]any{
			"email":  "flat@example.com",
			"emails": []any{map[string]any{"email": "list@example.com", "is_primary": true}},
		})
		require.NoError(t, err)
		require.Equal(t, "flat@example.com", acc.Email)
		require.Equal(t, "flat@example.com", acc.ID)
	})

	t.Run("primary entry of emails", func(t *testing.T) {
		acc, err := MapRemoteAccount(map[string]any{
			"id": "u1",
			"emails": []any{
				map[string]any{"email": "second@example.com"},
				map[string]any{"value": "primary@example.com", "primary": "true", "verified": 1},
			},
		})
		require.NoError(t, err)
		require.Equal(t, "primary@example.com", acc.Email)
		require.True(t, acc.EmailVerified)
	})

	t.Run("first entry when none is primary", func(t *testing.T) {
		acc, err := MapRemoteAccount(map[string]any{
			"id":     "u1",
			"emails": []any{"first@example.com", "other@example.com"},
		})
		require.NoError(t, err)
		require.Equal(t, "first@example.com", acc.Email)
		require.False(t, acc.EmailVerified)
	})

	t.Run("properties then username", func(t *testing.T) {
		acc, err := MapRemoteAccount(map[string]any{
			"id":         "u1",
			"properties": map[string]any{"email": "prop@example.com", "email_verified": "1"},
		})
		require.NoError(t, err)
		require.Equal(t, "prop@example.com", acc.Email)
		require.True(t, acc.EmailVerified)

		acc, err = MapRemoteAccount(map[string]any{"username": "user@example.com"})
		require.NoError(t, err)
		require.Equal(t, "user@example.com", acc.Email)
		require.Equal(t, "user@example.com", acc.ID)
	})

	t.Run("no email at all", func(t *testing.T) {
		acc, err := MapRemoteAccount(map[string]any{"sub": "abc", "username": "plain"})
		require.NoError(t, err)
		require.Empty(t, acc.Email)
		require.Equal(t, "abc", acc.ID)
		require.Equal(t, "", acc.Name)
	})
}

func TestMapRemoteAccount_EmailVerified(t *testing.T) {
	for name, tc := range map[string]struct {
		value any
		want  bool
	}{
		"bool true":     {true, true},
		"string true":   {"true", true},
		"string one":    {"1", true},
		"number one":    {float64(1), true},
		"bool false":    {false, false},
		"string false":  {"false", false},
		"number zero":   {float64(0), false},
		"garbage":       {"maybe", false},
		"empty string":  {"", false},
		"nested object": {map[string]any{}, false},
	} {
		t.Run(name, func(t *testing.T) {
			acc, err := MapRemoteAccount(map[string]any{"email": "a@example.com", "email_verified": tc.value})
			require.NoError(t, err)
			require.Equal(t, tc.want, acc.EmailVerified)
		})
	}

	t.Run("flat overrides entry", func(t *testing.T) {
		acc, err := MapRemoteAccount(map[string]any{
			"email_verified": false,
			"emails":         []any{map[string]any{"email": "a@example.com", "is_verified": true}},
		})
		require.NoError(t, err)
		require.False(t, acc.EmailVerified)
	})
}

func TestMapRemoteAccount_Name(t *testing.T) {
	cases := []struct {
		name   string
		record map[string]any
		want   string
	}{
		{"name", map[string]any{"email": "a@example.com", "name": "Alice A", "display_name": "Ali"}, "Alice A"},
		{"display name", map[string]any{"email": "a@example.com", "display_name": "Ali"}, "Ali"},
		{"given and family", map[string]any{"email": "a@example.com", "given_name": "Alice", "family_name": "Smith"}, "Alice Smith"},
		{"first and last", map[string]any{"email": "a@example.com", "first_name": "Alice", "last_name": "Smith"}, "Alice Smith"},
		{"given only", map[string]any{"email": "a@example.com", "first_name": "Alice"}, "Alice"},
		{"email", map[string]any{"email": "a@example.com"}, "a@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acc, err := MapRemoteAccount(tc.record)
			require.NoError(t, err)
			require.Equal(t, tc.want, acc.Name)
		})
	}
}

func TestMapRemoteAccount_Profile(t *testing.T) {
	acc, err := MapRemoteAccount(map[string]any{
		"email":        "a@example.com",
		"picture":      "https://img.example.com/flat.png",
		"locale":       "en-AU",
		"phone_number": "+61 400 000 000",
		"updated_at":   float64(1700000000),
		"properties": map[string]any{
			"picture":               "https://img.example.com/prop.png",
			"zoneinfo":              "Australia/Sydney",
			"phone_number_verified": "true",
			"address":               `{"locality":"Sydney","country":"AU"}`,
		},
	})
	require.NoError(t, err)

	require.Equal(t, "https://img.example.com/flat.png", acc.Picture, "flat field wins over properties")
	require.Equal(t, "en-AU", acc.Locale)
	require.Equal(t, "Australia/Sydney", acc.Zoneinfo)
	require.True(t, acc.PhoneNumberVerified)
	require.EqualValues(t, 1700000000, acc.UpdatedAt)
	require.Equal(t, &domain.Address{Locality: "Sydney", Country: "AU"}, acc.Address)
}

func TestMapRemoteAccount_Address(t *testing.T) {
	acc, err := MapRemoteAccount(map[string]any{
		"email":   "a@example.com",
		"address": map[string]any{"street_address": "1 George St", "postal_code": 2000},
	})
	require.NoError(t, err)
	require.Equal(t, &domain.Address{StreetAddress: "1 George St", PostalCode: "2000"}, acc.Address)

	acc, err = MapRemoteAccount(map[string]any{"email": "a@example.com", "address": "1 George St, Sydney"})
	require.NoError(t, err)
	require.Equal(t, &domain.Address{Formatted: "1 George St, Sydney"}, acc.Address)

	acc, err = MapRemoteAccount(map[string]any{"email": "a@example.com", "address": ""})
	require.NoError(t, err)
	require.Nil(t, acc.Address)
}

func TestMapRemoteAccount_RolesAndGroups(t *testing.T) {
	acc, err := MapRemoteAccount(map[string]any{
		"email":  "a@example.com",
		"roles":  []any{"admin", map[string]any{"name": "user"}, map[string]any{"id": 3}},
		"groups": []any{map[string]any{"name": "staff", "domain": "localhost"}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"admin", "user"}, acc.Roles)
	require.Equal(t, []string{"staff"}, acc.Groups)

	acc, err = MapRemoteAccount(map[string]any{"email": "a@example.com"})
	require.NoError(t, err)
	require.NotNil(t, acc.Roles)
	require.NotNil(t, acc.Groups)
	require.Empty(t, acc.Roles)
}

func TestMapRemoteAccount_Identifier(t *testing.T) {
	acc, err := MapRemoteAccount(map[string]any{"sub": "s1", "id": "i1", "username": "u1"})
	require.NoError(t, err)
	require.Equal(t, "s1", acc.ID)

	acc, err = MapRemoteAccount(map[string]any{"id": float64(42)})
	require.NoError(t, err)
	require.Equal(t, "42", acc.ID)

	_, err = MapRemoteAccount(map[string]any{"name": "Nobody"})
	require.Error(t, err)
}

func TestDecodeProperty(t *testing.T) {
	require.Equal(t, "en-AU", DecodeProperty(`"en-AU"`))
	require.Equal(t, true, DecodeProperty(`true`))
	require.Equal(t, map[string]any{"country": "AU"}, DecodeProperty(`{"country":"AU"}`))
	require.Equal(t, "not json", DecodeProperty("not json"))
}
