package sqlite

import (
	"context"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
)

type domainsRepo struct {
	q *gen.Queries
}

func (r *domainsRepo) Create(ctx context.Context, d domain.Domain) error {
	ts := now()
	err := r.q.CreateDomain(ctx, gen.CreateDomainParams{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsDefault:   d.IsDefault,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
	return mapError("create domain", err)
}

func (r *domainsRepo) GetByID(ctx context.Context, id string) (domain.Domain, error) {
	row, err := r.q.GetDomainByID(ctx, id)
	if err != nil {
		return domain.Domain{}, mapNotFound("get domain", err)
	}
	return mapDomain(row), nil
}

func (r *domainsRepo) GetByName(ctx context.Context, name string) (domain.Domain, error) {
	row, err := r.q.GetDomainByName(ctx, name)
	if err != nil {
		return domain.Domain{}, mapNotFound("get domain by name", err)
	}
	return mapDomain(row), nil
}

func (r *domainsRepo) List(ctx context.Context) ([]domain.Domain, error) {
	rows, err := r.q.ListDomains(ctx)
	if err != nil {
		return nil, mapError("list domains", err)
	}
	out := make([]domain.Domain, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapDomain(row))
	}
	return out, nil
}

func (r *domainsRepo) Count(ctx context.Context) (int, error) {
	n, err := r.q.CountDomains(ctx)
	return int(n), mapError("count domains", err)
}

func (r *domainsRepo) References(ctx context.Context, id string) (int, int, error) {
	users, err := r.q.CountUsersByDomain(ctx, id)
	if err != nil {
		return 0, 0, mapError("count domain users", err)
	}
	groups, err := r.q.CountGroupsByDomain(ctx, id)
	if err != nil {
		return 0, 0, mapError("count domain groups", err)
	}
	return int(users), int(groups), nil
}

func (r *domainsRepo) Delete(ctx context.Context, id string) error {
	n, err := r.q.DeleteDomain(ctx, id)
	if err != nil {
		return mapError("delete domain", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
