package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/idx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

func (s *AdminService) CreateDomain(ctx context.Context, actor Actor, name, description string) (domain.Domain, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Domain{}, domain.ErrValidation("domain name is required")
	}

	d := domain.Domain{
		ID:          idx.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Domains().GetByName(ctx, name); err == nil {
			return domain.ErrConflict("domain %q already exists", name)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Domains().Create(ctx, d); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrConflict("domain %q already exists", name)
			}
			return err
		}
		return s.Audit.Record(ctx, tx, actor, EntityDomain, d.ID, domain.AuditCreate, map[string]any{
			"name":        d.Name,
			"description": d.Description,
		})
	})
	if err != nil {
		return domain.Domain{}, err
	}

	slogx.FromContext(ctx).Info("domain created", "domain_id", d.ID, "name", d.Name, "by", actor.Username)
	return d, nil
}

// DeleteDomain removes an unreferenced domain. The default domain and any
// domain still holding users or groups are conflicts.
func (s *AdminService) DeleteDomain(ctx context.Context, actor Actor, id string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Domains().GetByID(ctx, id)
		if err != nil {
			return notFound(err, "domain not found")
		}
		if current.IsDefault {
			return domain.ErrConflict("domain %q is the default domain", current.Name)
		}

		if err := tx.Domains().Delete(ctx, id); err != nil {
			if errors.Is(err, store.ErrConstraint) {
				return domainInUse(ctx, tx, current)
			}
			return notFound(err, "domain not found")
		}
		return s.Audit.Record(ctx, tx, actor, EntityDomain, id, domain.AuditDelete, map[string]any{
			"name": current.Name,
		})
	})
}

// domainInUse names the foreign keys that blocked the delete.
func domainInUse(ctx context.Context, st store.Store, d domain.Domain) error {
	users, groups, err := st.Domains().References(ctx, d.ID)
	if err != nil {
		return err
	}
	return domain.ErrConflict("domain %q is still referenced (users.domain_id: %d, groups.domain_id: %d)",
		d.Name, users, groups)
}
