package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be bcrypt")
			require.True(t, IsRecognizedHash(hash))
			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, err := HashPassword("samepassword")
	require.NoError(t, err)
	hash2, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
}

func TestVerifyPassword_SingleCharacterMutation(t *testing.T) {
	bcryptHash, err := HashPassword("secret")
	require.NoError(t, err)
	argonHash, err := HashPasswordArgon2id("secret")
	require.NoError(t, err)

	for _, hash := range []string{bcryptHash, argonHash} {
		require.NoError(t, VerifyPassword("secret", hash))
		require.ErrorIs(t, VerifyPassword("secreT", hash), ErrPasswordMismatch)
		require.ErrorIs(t, VerifyPassword("secre", hash), ErrPasswordMismatch)
		require.ErrorIs(t, VerifyPassword("secrets", hash), ErrPasswordMismatch)
	}
}

func TestVerifyPassword_BcryptVariants(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	for _, prefix := range []string{"$2b$", "$2y$"} {
		variant := prefix + strings.TrimPrefix(hash, "$2a$")
		require.True(t, IsRecognizedHash(variant))
		require.NoError(t, VerifyPassword("secret", variant))
	}
}

func TestVerifyPassword_UnrecognizedFormat(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"plaintext", "secret"},
		{"empty", ""},
		{"md5 crypt", "$1$abcdefgh$0123456789abcdef"},
		{"argon2i", "$argon2i$v=19$m=16,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, IsRecognizedHash(tt.stored))
			require.ErrorIs(t, VerifyPassword("secret", tt.stored), ErrUnrecognizedHash)
		})
	}
}

func TestVerifyPassword_MalformedArgon2id(t *testing.T) {
	tests := []string{
		"$argon2id$v=19$m=19456,t=2,p=1$onlyonepart",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
	}

	for _, stored := range tests {
		err := VerifyPassword("secret", stored)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrUnrecognizedHash)
	}
}

func TestGeneratePassword(t *testing.T) {
	p1, err := GeneratePassword()
	require.NoError(t, err)
	p2, err := GeneratePassword()
	require.NoError(t, err)

	require.Len(t, p1, 16)
	require.NotEqual(t, p1, p2)
}
