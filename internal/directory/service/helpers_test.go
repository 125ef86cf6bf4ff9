package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite"
	"github.com/aussiebroadwan/directory/pkg/idx"
	"github.com/stretchr/testify/require"
)

var testActor = Actor{Username: "admin@localhost", IPAddress: "127.0.0.1", UserAgent: "go-test"}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAdminService(t *testing.T) (*AdminService, *sqlite.Store) {
	t.Helper()
	s := newTestStore(t)
	return &AdminService{Store: s, Audit: &AuditService{Store: s}}, s
}

func createDomain(t *testing.T, s *sqlite.Store, name string) domain.Domain {
	t.Helper()
	d := domain.Domain{ID: idx.New().String(), Name: name}
	require.NoError(t, s.Domains().Create(context.Background(), d))
	return d
}

func createUser(t *testing.T, s *sqlite.Store, domainID, email string) domain.User {
	t.Helper()
	ctx := context.Background()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		DomainID:     domainID,
		IsActive:     true,
	}
	require.NoError(t, s.Users().Create(ctx, u))
	require.NoError(t, s.Emails().Create(ctx, domain.Email{
		ID:        idx.New().String(),
		UserID:    u.ID,
		Email:     email,
		IsPrimary: true,
	}))
	return u
}
