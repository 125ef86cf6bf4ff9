package service

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
)

// MaxCredentialLength caps both the email and the password.
const MaxCredentialLength = 256

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeCredentials normalizes login form input. The email is trimmed,
// stripped of markup and must be a bare address; the password is passed
// through unchanged apart from the length check.
func SanitizeCredentials(email, password string) (string, string, error) {
	email = strings.TrimSpace(email)
	email = markupPattern.ReplaceAllString(email, "")
	email = strings.NewReplacer("<", "", ">", "").Replace(email)
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return "", "", domain.ErrValidation("email and password are required")
	}
	if utf8.RuneCountInString(email) > MaxCredentialLength || utf8.RuneCountInString(password) > MaxCredentialLength {
		return "", "", domain.ErrValidation("credentials exceed %d characters", MaxCredentialLength)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", "", domain.ErrValidation("invalid email address")
	}

	return email, password, nil
}
