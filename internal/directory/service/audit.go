package service

import (
	"context"
	"encoding/json"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/idx"
)

// DefaultAuditLimit is how many entries the audit view shows.
const DefaultAuditLimit = 200

// Actor identifies who performed an admin mutation.
type Actor struct {
	Username  string
	IPAddress string
	UserAgent string
}

type AuditService struct {
	Store store.Store
}

// Record appends an audit row using st, which may be a transaction.
func (s *AuditService) Record(
	ctx context.Context,
	st store.Store,
	actor Actor,
	entityType, entityID, action string,
	changes map[string]any,
) error {
	data, err := json.Marshal(changes)
	if err != nil {
		return err
	}
	return st.AuditLogs().Create(ctx, domain.AuditLog{
		ID:          idx.New().String(),
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Changes:     string(data),
		PerformedBy: actor.Username,
		IPAddress:   actor.IPAddress,
		UserAgent:   actor.UserAgent,
	})
}

// List returns the newest entries first.
func (s *AuditService) List(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	return s.Store.AuditLogs().List(ctx, limit)
}
