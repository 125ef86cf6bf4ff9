package sqlite

import (
	"context"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
)

type rolesRepo struct {
	q *gen.Queries
}

func (r *rolesRepo) Create(ctx context.Context, role domain.Role) error {
	ts := now()
	err := r.q.CreateRole(ctx, gen.CreateRoleParams{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
	return mapError("create role", err)
}

func (r *rolesRepo) GetByID(ctx context.Context, id string) (domain.Role, error) {
	row, err := r.q.GetRoleByID(ctx, id)
	if err != nil {
		return domain.Role{}, mapNotFound("get role", err)
	}
	return mapRole(row), nil
}

func (r *rolesRepo) GetByName(ctx context.Context, name string) (domain.Role, error) {
	row, err := r.q.GetRoleByName(ctx, name)
	if err != nil {
		return domain.Role{}, mapNotFound("get role by name", err)
	}
	return mapRole(row), nil
}

func (r *rolesRepo) List(ctx context.Context) ([]domain.RoleSummary, error) {
	rows, err := r.q.ListRolesWithCounts(ctx)
	if err != nil {
		return nil, mapError("list roles", err)
	}
	out := make([]domain.RoleSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.RoleSummary{
			Role: domain.Role{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			UserCount: int(row.UserCount),
		})
	}
	return out, nil
}

func (r *rolesRepo) Update(ctx context.Context, role domain.Role) error {
	n, err := r.q.UpdateRole(ctx, gen.UpdateRoleParams{
		Name:        role.Name,
		Description: role.Description,
		UpdatedAt:   now(),
		ID:          role.ID,
	})
	if err != nil {
		return mapError("update role", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *rolesRepo) Delete(ctx context.Context, id string) error {
	n, err := r.q.DeleteRole(ctx, id)
	if err != nil {
		return mapError("delete role", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *rolesRepo) Count(ctx context.Context) (int, error) {
	n, err := r.q.CountRoles(ctx)
	return int(n), mapError("count roles", err)
}

func (r *rolesRepo) NamesForUser(ctx context.Context, userID string) ([]string, error) {
	names, err := r.q.ListRoleNamesByUser(ctx, userID)
	return names, mapError("list role names", err)
}
