package sqlite

import (
	"context"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
)

type emailsRepo struct {
	q *gen.Queries
}

func (r *emailsRepo) Create(ctx context.Context, e domain.Email) error {
	err := r.q.CreateEmail(ctx, gen.CreateEmailParams{
		ID:         e.ID,
		UserID:     e.UserID,
		Email:      e.Email,
		IsPrimary:  e.IsPrimary,
		IsVerified: e.IsVerified,
		VerifiedAt: mapOptionalTime(e.VerifiedAt),
		CreatedAt:  now(),
	})
	return mapError("create email", err)
}

func (r *emailsRepo) ListByUser(ctx context.Context, userID string) ([]domain.Email, error) {
	rows, err := r.q.ListEmailsByUser(ctx, userID)
	if err != nil {
		return nil, mapError("list emails", err)
	}
	out := make([]domain.Email, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapEmail(row))
	}
	return out, nil
}

func (r *emailsRepo) Exists(ctx context.Context, email string) (bool, error) {
	n, err := r.q.CountEmail(ctx, email)
	if err != nil {
		return false, mapError("count email", err)
	}
	return n > 0, nil
}

func (r *emailsRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.q.DeleteEmailsByUser(ctx, userID)
	return mapError("delete emails", err)
}
