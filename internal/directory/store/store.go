package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrConstraint reports a foreign key violation (missing parent row or a
	// restricted delete).
	ErrConstraint = errors.New("store: constraint violation")
)

// Store is the root data access interface for the relational directory.
// It exposes sub-repositories per table so services depend only on what
// they touch, and so a Tx exposes exactly the same surface.
type Store interface {
	Domains() Domains
	Users() Users
	Emails() Emails
	Properties() Properties
	Roles() Roles
	Groups() Groups
	UserRoles() UserRoles
	UserGroups() UserGroups
	AuditLogs() AuditLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Domains interface {
	Create(ctx context.Context, d domain.Domain) error
	GetByID(ctx context.Context, id string) (domain.Domain, error)
	GetByName(ctx context.Context, name string) (domain.Domain, error)
	List(ctx context.Context) ([]domain.Domain, error)
	Count(ctx context.Context) (int, error)
	// References counts the users and groups that pin the domain.
	References(ctx context.Context, id string) (users, groups int, err error)
	// Delete returns ErrConstraint while users or groups reference the domain.
	Delete(ctx context.Context, id string) error
}

type Users interface {
	// Create inserts a new user (id is provided by the caller via ULID).
	Create(ctx context.Context, u domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// GetByEmail resolves a user through any of their email addresses.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetActiveByPrimaryEmail resolves an active user through their primary
	// email only. This is the credential lookup.
	GetActiveByPrimaryEmail(ctx context.Context, email string) (domain.User, error)

	// List returns every user with primary email and domain name joined.
	List(ctx context.Context) ([]domain.UserSummary, error)
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)

	// Update rewrites every column except id and created_at.
	Update(ctx context.Context, u domain.User) error

	// Delete cascades to emails, properties and memberships.
	Delete(ctx context.Context, id string) error
}

type Emails interface {
	Create(ctx context.Context, e domain.Email) error
	// ListByUser returns the user's addresses, primary first.
	ListByUser(ctx context.Context, userID string) ([]domain.Email, error)
	Exists(ctx context.Context, email string) (bool, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type Properties interface {
	// Upsert inserts or replaces the value stored under (user, key).
	Upsert(ctx context.Context, p domain.Property) error
	ListByUser(ctx context.Context, userID string) ([]domain.Property, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type Roles interface {
	Create(ctx context.Context, r domain.Role) error
	GetByID(ctx context.Context, id string) (domain.Role, error)
	GetByName(ctx context.Context, name string) (domain.Role, error)
	List(ctx context.Context) ([]domain.RoleSummary, error)
	Update(ctx context.Context, r domain.Role) error
	// Delete cascades to user_roles.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	NamesForUser(ctx context.Context, userID string) ([]string, error)
}

type Groups interface {
	Create(ctx context.Context, g domain.Group) error
	GetByID(ctx context.Context, id string) (domain.Group, error)
	GetByName(ctx context.Context, name, domainID string) (domain.Group, error)
	List(ctx context.Context) ([]domain.GroupSummary, error)
	Update(ctx context.Context, g domain.Group) error
	// Delete cascades to user_groups.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	NamesForUser(ctx context.Context, userID string) ([]string, error)
}

type UserRoles interface {
	// Assign returns ErrAlreadyExists when the pair is present.
	Assign(ctx context.Context, userID, roleID string) error
	// Remove reports whether a row was deleted.
	Remove(ctx context.Context, userID, roleID string) (bool, error)
	Exists(ctx context.Context, userID, roleID string) (bool, error)
	CountForRole(ctx context.Context, roleID string) (int, error)
	Members(ctx context.Context, roleID string) ([]domain.Member, error)
}

type UserGroups interface {
	// Assign returns ErrAlreadyExists when the pair is present.
	Assign(ctx context.Context, userID, groupID string) error
	// Remove reports whether a row was deleted.
	Remove(ctx context.Context, userID, groupID string) (bool, error)
	Exists(ctx context.Context, userID, groupID string) (bool, error)
	CountForGroup(ctx context.Context, groupID string) (int, error)
	Members(ctx context.Context, groupID string) ([]domain.Member, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l domain.AuditLog) error
	// List returns the newest entries first.
	List(ctx context.Context, limit int) ([]domain.AuditLog, error)
	// DeleteBefore is housekeeping; it returns the number of rows removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
