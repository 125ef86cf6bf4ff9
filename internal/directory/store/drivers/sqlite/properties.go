package sqlite

import (
	"context"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
)

type propertiesRepo struct {
	q *gen.Queries
}

func (r *propertiesRepo) Upsert(ctx context.Context, p domain.Property) error {
	ts := now()
	err := r.q.UpsertProperty(ctx, gen.UpsertPropertyParams{
		ID:        p.ID,
		UserID:    p.UserID,
		Key:       p.Key,
		Value:     p.Value,
		CreatedAt: ts,
		UpdatedAt: ts,
	})
	return mapError("upsert property", err)
}

func (r *propertiesRepo) ListByUser(ctx context.Context, userID string) ([]domain.Property, error) {
	rows, err := r.q.ListPropertiesByUser(ctx, userID)
	if err != nil {
		return nil, mapError("list properties", err)
	}
	out := make([]domain.Property, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapProperty(row))
	}
	return out, nil
}

func (r *propertiesRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.q.DeletePropertiesByUser(ctx, userID)
	return mapError("delete properties", err)
}
