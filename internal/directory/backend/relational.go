package backend

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/cryptox"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// Relational resolves accounts from the relational store.
type Relational struct {
	Store store.Store
}

func NewRelational(st store.Store) *Relational {
	return &Relational{Store: st}
}

func (r *Relational) Count(ctx context.Context) int {
	n, err := r.Store.Users().CountActive(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("relational directory count failed", "error", err)
		return 0
	}
	return n
}

// Find looks the account up by user id, then by any of its email addresses.
// Inactive users are treated as unknown.
func (r *Relational) Find(ctx context.Context, id string) (domain.Account, error) {
	u, err := r.Store.Users().GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) && looksLikeEmail(id) {
		u, err = r.Store.Users().GetByEmail(ctx, id)
	}
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, transient("find account", err)
	}
	if !u.IsActive {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return r.assemble(ctx, u)
}

// Validate checks the password of the active user owning the primary email.
// A missing user still costs one bcrypt comparison.
func (r *Relational) Validate(ctx context.Context, email, password string) (domain.Account, error) {
	logger := slogx.FromContext(ctx)

	u, err := r.Store.Users().GetActiveByPrimaryEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		cryptox.DummyVerify(password)
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, transient("validate account", err)
	}

	switch err := cryptox.VerifyPassword(password, u.PasswordHash); {
	case err == nil:
	case errors.Is(err, cryptox.ErrPasswordMismatch):
		return domain.Account{}, domain.ErrAccountNotFound
	case errors.Is(err, cryptox.ErrUnrecognizedHash):
		logger.Warn("SECURITY: stored password is not a recognised hash; rejecting login",
			"user_id", u.ID,
		)
		return domain.Account{}, domain.ErrAccountNotFound
	default:
		logger.Warn("SECURITY: stored password hash is malformed; rejecting login",
			"user_id", u.ID,
			"error", err,
		)
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return r.assemble(ctx, u)
}

func (r *Relational) assemble(ctx context.Context, u domain.User) (domain.Account, error) {
	emails, err := r.Store.Emails().ListByUser(ctx, u.ID)
	if err != nil {
		return domain.Account{}, transient("load emails", err)
	}
	props, err := r.Store.Properties().ListByUser(ctx, u.ID)
	if err != nil {
		return domain.Account{}, transient("load properties", err)
	}
	roles, err := r.Store.Roles().NamesForUser(ctx, u.ID)
	if err != nil {
		return domain.Account{}, transient("load roles", err)
	}
	groups, err := r.Store.Groups().NamesForUser(ctx, u.ID)
	if err != nil {
		return domain.Account{}, transient("load groups", err)
	}

	bag := make(map[string]any, len(props))
	for _, p := range props {
		bag[p.Key] = DecodeProperty(p.Value)
	}

	acc := domain.Account{
		ID:         u.ID,
		Username:   u.Username,
		GivenName:  u.FirstName,
		FamilyName: u.LastName,
		Roles:      roles,
		Groups:     groups,
	}
	if len(emails) > 0 {
		acc.Email = emails[0].Email
		acc.EmailVerified = emails[0].IsVerified
	}
	if !acc.EmailVerified {
		acc.EmailVerified = truthy(bag["email_verified"])
	}

	ApplyProfile(&acc, bag)
	acc.Name = firstNonEmpty(u.DisplayName, joinName(acc.GivenName, acc.FamilyName), stringValue(bag["name"]), acc.Email)

	return acc, nil
}
