package sqlite

import (
	"context"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
)

type groupsRepo struct {
	q *gen.Queries
}

func (r *groupsRepo) Create(ctx context.Context, g domain.Group) error {
	ts := now()
	err := r.q.CreateGroup(ctx, gen.CreateGroupParams{
		ID:          g.ID,
		Name:        g.Name,
		DomainID:    g.DomainID,
		Description: g.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
	return mapError("create group", err)
}

func (r *groupsRepo) GetByID(ctx context.Context, id string) (domain.Group, error) {
	row, err := r.q.GetGroupByID(ctx, id)
	if err != nil {
		return domain.Group{}, mapNotFound("get group", err)
	}
	return mapGroup(row), nil
}

func (r *groupsRepo) GetByName(ctx context.Context, name, domainID string) (domain.Group, error) {
	row, err := r.q.GetGroupByNameInDomain(ctx, gen.GetGroupByNameInDomainParams{
		Name:     name,
		DomainID: domainID,
	})
	if err != nil {
		return domain.Group{}, mapNotFound("get group by name", err)
	}
	return mapGroup(row), nil
}

func (r *groupsRepo) List(ctx context.Context) ([]domain.GroupSummary, error) {
	rows, err := r.q.ListGroupsWithCounts(ctx)
	if err != nil {
		return nil, mapError("list groups", err)
	}
	out := make([]domain.GroupSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.GroupSummary{
			Group: domain.Group{
				ID:          row.ID,
				Name:        row.Name,
				DomainID:    row.DomainID,
				Description: row.Description,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			DomainName: row.DomainName,
			UserCount:  int(row.UserCount),
		})
	}
	return out, nil
}

func (r *groupsRepo) Update(ctx context.Context, g domain.Group) error {
	n, err := r.q.UpdateGroup(ctx, gen.UpdateGroupParams{
		Name:        g.Name,
		DomainID:    g.DomainID,
		Description: g.Description,
		UpdatedAt:   now(),
		ID:          g.ID,
	})
	if err != nil {
		return mapError("update group", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *groupsRepo) Delete(ctx context.Context, id string) error {
	n, err := r.q.DeleteGroup(ctx, id)
	if err != nil {
		return mapError("delete group", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *groupsRepo) Count(ctx context.Context) (int, error) {
	n, err := r.q.CountGroups(ctx)
	return int(n), mapError("count groups", err)
}

func (r *groupsRepo) NamesForUser(ctx context.Context, userID string) ([]string, error) {
	names, err := r.q.ListGroupNamesByUser(ctx, userID)
	return names, mapError("list group names", err)
}
