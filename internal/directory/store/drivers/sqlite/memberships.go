package sqlite

import (
	"context"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
	"github.com/aussiebroadwan/directory/pkg/idx"
)

type userRolesRepo struct {
	q *gen.Queries
}

func (r *userRolesRepo) Assign(ctx context.Context, userID, roleID string) error {
	err := r.q.CreateUserRole(ctx, gen.CreateUserRoleParams{
		ID:        idx.New().String(),
		UserID:    userID,
		RoleID:    roleID,
		CreatedAt: now(),
	})
	return mapError("assign role", err)
}

func (r *userRolesRepo) Remove(ctx context.Context, userID, roleID string) (bool, error) {
	n, err := r.q.DeleteUserRole(ctx, gen.DeleteUserRoleParams{UserID: userID, RoleID: roleID})
	if err != nil {
		return false, mapError("remove role", err)
	}
	return n > 0, nil
}

func (r *userRolesRepo) Exists(ctx context.Context, userID, roleID string) (bool, error) {
	n, err := r.q.CountUserRole(ctx, gen.CountUserRoleParams{UserID: userID, RoleID: roleID})
	if err != nil {
		return false, mapError("count user role", err)
	}
	return n > 0, nil
}

func (r *userRolesRepo) CountForRole(ctx context.Context, roleID string) (int, error) {
	n, err := r.q.CountUserRolesByRole(ctx, roleID)
	return int(n), mapError("count role members", err)
}

func (r *userRolesRepo) Members(ctx context.Context, roleID string) ([]domain.Member, error) {
	rows, err := r.q.ListRoleMembers(ctx, roleID)
	if err != nil {
		return nil, mapError("list role members", err)
	}
	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Member{UserID: row.ID, Username: row.Username, Email: row.Email})
	}
	return out, nil
}

type userGroupsRepo struct {
	q *gen.Queries
}

func (r *userGroupsRepo) Assign(ctx context.Context, userID, groupID string) error {
	err := r.q.CreateUserGroup(ctx, gen.CreateUserGroupParams{
		ID:        idx.New().String(),
		UserID:    userID,
		GroupID:   groupID,
		CreatedAt: now(),
	})
	return mapError("assign group", err)
}

func (r *userGroupsRepo) Remove(ctx context.Context, userID, groupID string) (bool, error) {
	n, err := r.q.DeleteUserGroup(ctx, gen.DeleteUserGroupParams{UserID: userID, GroupID: groupID})
	if err != nil {
		return false, mapError("remove group", err)
	}
	return n > 0, nil
}

func (r *userGroupsRepo) Exists(ctx context.Context, userID, groupID string) (bool, error) {
	n, err := r.q.CountUserGroup(ctx, gen.CountUserGroupParams{UserID: userID, GroupID: groupID})
	if err != nil {
		return false, mapError("count user group", err)
	}
	return n > 0, nil
}

func (r *userGroupsRepo) CountForGroup(ctx context.Context, groupID string) (int, error) {
	n, err := r.q.CountUserGroupsByGroup(ctx, groupID)
	return int(n), mapError("count group members", err)
}

func (r *userGroupsRepo) Members(ctx context.Context, groupID string) ([]domain.Member, error) {
	rows, err := r.q.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, mapError("list group members", err)
	}
	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Member{UserID: row.ID, Username: row.Username, Email: row.Email})
	}
	return out, nil
}
