package sqlite

import (
	"context"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	ts := now()
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		DisplayName:  u.DisplayName,
		DomainID:     u.DomainID,
		IsActive:     u.IsActive,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
	return mapError("create user", err)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound("get user", err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound("get user by username", err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound("get user by email", err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetActiveByPrimaryEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetActiveUserByPrimaryEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound("get active user by email", err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) List(ctx context.Context) ([]domain.UserSummary, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, mapError("list users", err)
	}

	out := make([]domain.UserSummary, 0, len(rows))
	for _, row := range rows {
		roles, err := r.q.ListRoleNamesByUser(ctx, row.ID)
		if err != nil {
			return nil, mapError("list user roles", err)
		}
		groups, err := r.q.ListGroupNamesByUser(ctx, row.ID)
		if err != nil {
			return nil, mapError("list user groups", err)
		}

		out = append(out, domain.UserSummary{
			User: mapUser(gen.User{
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
			}),
			PrimaryEmail: row.PrimaryEmail,
			DomainName:   row.DomainName,
			Roles:        roles,
			Groups:       groups,
		})
	}
	return out, nil
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	n, err := r.q.CountUsers(ctx)
	return int(n), mapError("count users", err)
}

func (r *usersRepo) CountActive(ctx context.Context) (int, error) {
	n, err := r.q.CountActiveUsers(ctx)
	return int(n), mapError("count active users", err)
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) error {
	n, err := r.q.UpdateUser(ctx, gen.UpdateUserParams{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		DisplayName:  u.DisplayName,
		DomainID:     u.DomainID,
		IsActive:     u.IsActive,
		UpdatedAt:    now(),
		ID:           u.ID,
	})
	if err != nil {
		return mapError("update user", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	n, err := r.q.DeleteUser(ctx, id)
	if err != nil {
		return mapError("delete user", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
