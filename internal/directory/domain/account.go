package domain

// Address is the OIDC address claim.
type Address struct {
	Formatted     string `json:"formatted,omitempty" mapstructure:"formatted"`
	StreetAddress string `json:"street_address,omitempty" mapstructure:"street_address"`
	Locality      string `json:"locality,omitempty" mapstructure:"locality"`
	Region        string `json:"region,omitempty" mapstructure:"region"`
	PostalCode    string `json:"postal_code,omitempty" mapstructure:"postal_code"`
	Country       string `json:"country,omitempty" mapstructure:"country"`
}

// IsZero reports whether no address component is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Account is the normalized identity every directory backend produces.
// ID is the stable identifier handed to the protocol engine as the subject.
type Account struct {
	ID                  string   `json:"id"`
	Username            string   `json:"username,omitempty"`
	Email               string   `json:"email"`
	EmailVerified       bool     `json:"email_verified"`
	Name                string   `json:"name"`
	GivenName           string   `json:"given_name,omitempty"`
	FamilyName          string   `json:"family_name,omitempty"`
	MiddleName          string   `json:"middle_name,omitempty"`
	Nickname            string   `json:"nickname,omitempty"`
	PreferredUsername   string   `json:"preferred_username,omitempty"`
	Profile             string   `json:"profile,omitempty"`
	Picture             string   `json:"picture,omitempty"`
	Website             string   `json:"website,omitempty"`
	Gender              string   `json:"gender,omitempty"`
	Birthdate           string   `json:"birthdate,omitempty"`
	Zoneinfo            string   `json:"zoneinfo,omitempty"`
	Locale              string   `json:"locale,omitempty"`
	PhoneNumber         string   `json:"phone_number,omitempty"`
	PhoneNumberVerified bool     `json:"phone_number_verified,omitempty"`
	Address             *Address `json:"address,omitempty"`
	UpdatedAt           int64    `json:"updated_at,omitempty"`
	Roles               []string `json:"roles"`
	Groups              []string `json:"groups"`
}

// HasRole reports whether the account carries the named role.
func (a Account) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Claims returns the OIDC claim set for the account. Empty optional claims
// are omitted; roles and groups are always present.
func (a Account) Claims() map[string]any {
	claims := map[string]any{
		"sub":            a.ID,
		"email":          a.Email,
		"email_verified": a.EmailVerified,
		"name":           a.Name,
		"roles":          nonNil(a.Roles),
		"groups":         nonNil(a.Groups),
	}

	optional := map[string]string{
		"given_name":         a.GivenName,
		"family_name":        a.FamilyName,
		"middle_name":        a.MiddleName,
		"nickname":           a.Nickname,
		"preferred_username": a.PreferredUsername,
		"profile":            a.Profile,
		"picture":            a.Picture,
		"website":            a.Website,
		"gender":             a.Gender,
		"birthdate":          a.Birthdate,
		"zoneinfo":           a.Zoneinfo,
		"locale":             a.Locale,
		"phone_number":       a.PhoneNumber,
	}
	for k, v := range optional {
		if v != "" {
			claims[k] = v
		}
	}

	if a.PhoneNumber != "" {
		claims["phone_number_verified"] = a.PhoneNumberVerified
	}
	if a.Address != nil && !a.Address.IsZero() {
		claims["address"] = *a.Address
	}
	if a.UpdatedAt != 0 {
		claims["updated_at"] = a.UpdatedAt
	}

	return claims
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
