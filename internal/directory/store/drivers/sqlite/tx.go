package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		tx: tx,
		q:  gen.New(tx),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op; the transaction already holds the connection.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Domains() store.Domains       { return &domainsRepo{q: t.q} }
func (t *txStore) Users() store.Users           { return &usersRepo{q: t.q} }
func (t *txStore) Emails() store.Emails         { return &emailsRepo{q: t.q} }
func (t *txStore) Properties() store.Properties { return &propertiesRepo{q: t.q} }
func (t *txStore) Roles() store.Roles           { return &rolesRepo{q: t.q} }
func (t *txStore) Groups() store.Groups         { return &groupsRepo{q: t.q} }
func (t *txStore) UserRoles() store.UserRoles   { return &userRolesRepo{q: t.q} }
func (t *txStore) UserGroups() store.UserGroups { return &userGroupsRepo{q: t.q} }
func (t *txStore) AuditLogs() store.AuditLogs   { return &auditLogsRepo{q: t.q} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
