package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

// DefaultBusyTimeout bounds how long a writer waits on the database lock
// before the call fails with a transient error.
const DefaultBusyTimeout = 5 * time.Second

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSN builds a modernc connection string for a database file with foreign
// keys enforced and a bounded lock wait.
func DSN(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)",
		path, busyTimeout.Milliseconds(),
	)
}

// NewStore opens the database. All access is serialised through a single
// connection, which also keeps ":memory:" databases alive for tests.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	// Enforce FKs even when the DSN does not carry the pragma
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapError("begin tx", err)
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return mapError("commit", tx.Commit())
}

func (s *Store) Domains() store.Domains       { return &domainsRepo{q: s.q} }
func (s *Store) Users() store.Users           { return &usersRepo{q: s.q} }
func (s *Store) Emails() store.Emails         { return &emailsRepo{q: s.q} }
func (s *Store) Properties() store.Properties { return &propertiesRepo{q: s.q} }
func (s *Store) Roles() store.Roles           { return &rolesRepo{q: s.q} }
func (s *Store) Groups() store.Groups         { return &groupsRepo{q: s.q} }
func (s *Store) UserRoles() store.UserRoles   { return &userRolesRepo{q: s.q} }
func (s *Store) UserGroups() store.UserGroups { return &userGroupsRepo{q: s.q} }
func (s *Store) AuditLogs() store.AuditLogs   { return &auditLogsRepo{q: s.q} }

func now() time.Time { return time.Now().UTC() }

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapDomain(row gen.Domain) domain.Domain {
	return domain.Domain{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		IsDefault:   row.IsDefault,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		DisplayName:  row.DisplayName,
		DomainID:     row.DomainID,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapEmail(row gen.UserEmail) domain.Email {
	return domain.Email{
		ID:         row.ID,
		UserID:     row.UserID,
		Email:      row.Email,
		IsPrimary:  row.IsPrimary,
		IsVerified: row.IsVerified,
		VerifiedAt: mapNullTimePtr(row.VerifiedAt),
		CreatedAt:  row.CreatedAt,
	}
}

func mapProperty(row gen.UserProperty) domain.Property {
	return domain.Property{
		ID:        row.ID,
		UserID:    row.UserID,
		Key:       row.Key,
		Value:     row.Value,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapRole(row gen.Role) domain.Role {
	return domain.Role{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func mapGroup(row gen.Group) domain.Group {
	return domain.Group{
		ID:          row.ID,
		Name:        row.Name,
		DomainID:    row.DomainID,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func mapAuditLog(row gen.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		ID:          row.ID,
		EntityType:  row.EntityType,
		EntityID:    row.EntityID,
		Action:      row.Action,
		Changes:     row.Changes,
		PerformedBy: row.PerformedBy,
		IPAddress:   row.IpAddress,
		UserAgent:   row.UserAgent,
		CreatedAt:   row.CreatedAt,
	}
}
