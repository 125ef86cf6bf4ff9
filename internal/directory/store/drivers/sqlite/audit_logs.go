package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite/gen"
)

type auditLogsRepo struct {
	q *gen.Queries
}

func (r *auditLogsRepo) Create(ctx context.Context, l domain.AuditLog) error {
	err := r.q.CreateAuditLog(ctx, gen.CreateAuditLogParams{
		ID:          l.ID,
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		Action:      l.Action,
		Changes:     l.Changes,
		PerformedBy: l.PerformedBy,
		IpAddress:   l.IPAddress,
		UserAgent:   l.UserAgent,
		CreatedAt:   now(),
	})
	return mapError("create audit log", err)
}

func (r *auditLogsRepo) List(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	rows, err := r.q.ListAuditLogs(ctx, int64(limit))
	if err != nil {
		return nil, mapError("list audit logs", err)
	}
	out := make([]domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAuditLog(row))
	}
	return out, nil
}

func (r *auditLogsRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.q.DeleteAuditLogsBefore(ctx, cutoff.UTC())
	return n, mapError("delete audit logs", err)
}
