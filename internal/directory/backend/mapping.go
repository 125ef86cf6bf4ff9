package backend

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/mitchellh/mapstructure"
)

// remoteRecord is the loose shape directory services return. Unmatched
// keys land in Extra so flat profile claims can be picked up.
type remoteRecord struct {
	ID            string         `mapstructure:"id"`
	Sub           string         `mapstructure:"sub"`
	Username      string         `mapstructure:"username"`
	Email         string         `mapstructure:"email"`
	EmailVerified any            `mapstructure:"email_verified"`
	Emails        []any          `mapstructure:"emails"`
	Name          string         `mapstructure:"name"`
	DisplayName   string         `mapstructure:"display_name"`
	GivenName     string         `mapstructure:"given_name"`
	FirstName     string         `mapstructure:"first_name"`
	FamilyName    string         `mapstructure:"family_name"`
	LastName      string         `mapstructure:"last_name"`
	Properties    map[string]any `mapstructure:"properties"`
	Roles         []any          `mapstructure:"roles"`
	Groups        []any          `mapstructure:"groups"`
	Extra         map[string]any `mapstructure:",remain"`
}

type remoteEmail struct {
	Email      string `mapstructure:"email"`
	Value      string `mapstructure:"value"`
	IsPrimary  any    `mapstructure:"is_primary"`
	Primary    any    `mapstructure:"primary"`
	IsVerified any    `mapstructure:"is_verified"`
	Verified   any    `mapstructure:"verified"`
}

func (e remoteEmail) address() string { return firstNonEmpty(e.Email, e.Value) }
func (e remoteEmail) primary() bool   { return truthy(e.IsPrimary) || truthy(e.Primary) }

func (e remoteEmail) verified() (bool, bool) {
	switch {
	case e.IsVerified != nil:
		return truthy(e.IsVerified), true
	case e.Verified != nil:
		return truthy(e.Verified), true
	}
	return false, false
}

// MapRemoteAccount normalizes a directory record into an Account.
//
// Email comes from the flat field, then the primary (or first) entry of
// emails, then properties, then a username that looks like an address.
// Name falls back from name to display_name to given and family names to the
// email. Profile claims prefer flat fields over the properties bag. The
// identifier is the email, then sub, id and username.
func MapRemoteAccount(record map[string]any) (domain.Account, error) {
	var rec remoteRecord
	if err := weakDecode(record, &rec); err != nil {
		return domain.Account{}, err
	}

	entry, hasEntry := rec.chosenEmail()

	email := strings.TrimSpace(rec.Email)
	if email == "" && hasEntry {
		email = entry.address()
	}
	if email == "" {
		email = stringValue(rec.Properties["email"])
	}
	if email == "" && looksLikeEmail(rec.Username) {
		email = rec.Username
	}

	verified := false
	if rec.EmailVerified != nil {
		verified = truthy(rec.EmailVerified)
	} else if v, ok := entry.verified(); hasEntry && ok {
		verified = v
	} else if v, ok := rec.Properties["email_verified"]; ok {
		verified = truthy(v)
	}

	acc := domain.Account{
		ID:            firstNonEmpty(email, rec.Sub, rec.ID, rec.Username),
		Username:      rec.Username,
		Email:         email,
		EmailVerified: verified,
		GivenName:     firstNonEmpty(rec.GivenName, rec.FirstName),
		FamilyName:    firstNonEmpty(rec.FamilyName, rec.LastName),
	}
	if acc.ID == "" {
		return domain.Account{}, errors.New("remote account has no identifier")
	}

	ApplyProfile(&acc, rec.Extra)
	ApplyProfile(&acc, rec.Properties)

	acc.Name = firstNonEmpty(rec.Name, rec.DisplayName, joinName(acc.GivenName, acc.FamilyName), email)
	acc.Roles = namesOf(rec.Roles)
	acc.Groups = namesOf(rec.Groups)

	return acc, nil
}

// chosenEmail returns the primary entry of emails, or the first one.
func (r remoteRecord) chosenEmail() (remoteEmail, bool) {
	entries := make([]remoteEmail, 0, len(r.Emails))
	for _, raw := range r.Emails {
		switch v := raw.(type) {
		case string:
			entries = append(entries, remoteEmail{Email: v})
		case map[string]any:
			var e remoteEmail
			if err := weakDecode(v, &e); err == nil && e.address() != "" {
				entries = append(entries, e)
			}
		}
	}
	if len(entries) == 0 {
		return remoteEmail{}, false
	}
	for _, e := range entries {
		if e.primary() {
			return e, true
		}
	}
	return entries[0], true
}

// ApplyProfile fills profile claims that are still empty on acc from bag.
// Call it once per source in precedence order.
func ApplyProfile(acc *domain.Account, bag map[string]any) {
	if len(bag) == 0 {
		return
	}

	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = stringValue(bag[key])
		}
	}
	fill(&acc.GivenName, "given_name")
	fill(&acc.FamilyName, "family_name")
	fill(&acc.MiddleName, "middle_name")
	fill(&acc.Nickname, "nickname")
	fill(&acc.PreferredUsername, "preferred_username")
	fill(&acc.Profile, "profile")
	fill(&acc.Picture, "picture")
	fill(&acc.Website, "website")
	fill(&acc.Gender, "gender")
	fill(&acc.Birthdate, "birthdate")
	fill(&acc.Zoneinfo, "zoneinfo")
	fill(&acc.Locale, "locale")
	fill(&acc.PhoneNumber, "phone_number")

	if !acc.PhoneNumberVerified {
		if v, ok := bag["phone_number_verified"]; ok {
			acc.PhoneNumberVerified = truthy(v)
		}
	}
	if acc.UpdatedAt == 0 {
		acc.UpdatedAt = unixValue(bag["updated_at"])
	}
	if acc.Address == nil {
		acc.Address = addressValue(bag["address"])
	}
}

// DecodeProperty returns the JSON value stored in a property, or the raw
// text when it is not JSON.
func DecodeProperty(value string) any {
	var v any
	if err := json.Unmarshal([]byte(value), &v); err != nil {
		return value
	}
	return v
}

func weakDecode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// truthy accepts bools, "true"/"1" style strings and non-zero numbers.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	var b bool
	if err := weakDecode(v, &b); err != nil {
		return false
	}
	return b
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil, map[string]any, []any:
		return ""
	case string:
		return strings.TrimSpace(t)
	}
	var s string
	if err := weakDecode(v, &s); err != nil {
		return ""
	}
	return s
}

// unixValue reads seconds since the epoch from a number, a numeric string or
// an RFC 3339 timestamp.
func unixValue(v any) int64 {
	switch t := v.(type) {
	case nil:
		return 0
	case time.Time:
		return t.Unix()
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts.Unix()
		}
		return 0
	}
	var n int64
	if err := weakDecode(v, &n); err != nil {
		return 0
	}
	return n
}

// addressValue accepts an object, a JSON object encoded as a string, or a
// plain string taken as the formatted address.
func addressValue(v any) *domain.Address {
	var addr domain.Address
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		if err := weakDecode(t, &addr); err != nil {
			return nil
		}
	case string:
		s := strings.TrimSpace(t)
		var obj map[string]any
		if strings.HasPrefix(s, "{") && json.Unmarshal([]byte(s), &obj) == nil {
			if err := weakDecode(obj, &addr); err != nil {
				return nil
			}
		} else {
			addr.Formatted = s
		}
	default:
		return nil
	}
	if addr.IsZero() {
		return nil
	}
	return &addr
}

// namesOf reads role or group names from strings or {"name": ...} objects.
func namesOf(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if v != "" {
				out = append(out, v)
			}
		case map[string]any:
			var named struct {
				Name string `mapstructure:"name"`
			}
			if err := weakDecode(v, &named); err == nil && named.Name != "" {
				out = append(out, named.Name)
			}
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func joinName(given, family string) string {
	return strings.TrimSpace(strings.TrimSpace(given) + " " + strings.TrimSpace(family))
}
