package domain

import "time"

// DefaultDomainName is the domain the seeder creates for local deployments.
const DefaultDomainName = "localhost"

// Default role names.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

type Domain struct {
	ID          string
	Name        string
	Description string
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt or PHC argon2id
	FirstName    string
	LastName     string
	DisplayName  string
	DomainID     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Email struct {
	ID         string
	UserID     string
	Email      string
	IsPrimary  bool
	IsVerified bool
	VerifiedAt *time.Time
	CreatedAt  time.Time
}

// Property is a free-form user attribute. Value holds JSON text when it was
// written by this service; other writers may have stored bare strings.
type Property struct {
	ID        string
	UserID    string
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Group struct {
	ID          string
	Name        string
	DomainID    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuditLog is an append-only record of an admin mutation.
type AuditLog struct {
	ID          string
	EntityType  string
	EntityID    string
	Action      string
	Changes     string // JSON document
	PerformedBy string
	IPAddress   string
	UserAgent   string
	CreatedAt   time.Time
}

// Audit actions.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
	AuditAssign = "assign"
	AuditRevoke = "revoke"
)

// Counts is the dashboard aggregate.
type Counts struct {
	Users   int `json:"users"`
	Roles   int `json:"roles"`
	Groups  int `json:"groups"`
	Domains int `json:"domains"`
}

// UserSummary is a user row joined with its primary email and memberships.
type UserSummary struct {
	User
	PrimaryEmail string
	DomainName   string
	Roles        []string
	Groups       []string
}

// RoleSummary is a role with its member count.
type RoleSummary struct {
	Role
	UserCount int
}

// GroupSummary is a group with its domain name and member count.
type GroupSummary struct {
	Group
	DomainName string
	UserCount  int
}

// Member is a user listed on a role or group detail page.
type Member struct {
	UserID   string
	Username string
	Email    string
}
