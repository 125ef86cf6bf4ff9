package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/cryptox"
	"github.com/aussiebroadwan/directory/pkg/idx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// UserInput is the editable part of a user record. Emails[0] becomes the
// primary address. On update an empty Password keeps the current hash, and
// Emails and Properties replace the stored sets.
type UserInput struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	DisplayName string
	DomainID    string
	Active      bool
	Emails      []string
	Properties  map[string]string
}

func (in *UserInput) normalize() error {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.DomainID = strings.TrimSpace(in.DomainID)

	if in.Username == "" || in.DomainID == "" {
		return domain.ErrValidation("username and domain are required")
	}
	if len(in.Password) > MaxCredentialLength {
		return domain.ErrValidation("password exceeds %d characters", MaxCredentialLength)
	}
	if in.DisplayName == "" {
		in.DisplayName = strings.TrimSpace(in.FirstName + " " + in.LastName)
	}

	seen := make(map[string]bool, len(in.Emails))
	emails := make([]string, 0, len(in.Emails))
	for _, e := range in.Emails {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		addr, err := mail.ParseAddress(e)
		if err != nil || addr.Address != e {
			return domain.ErrValidation("invalid email address %q", e)
		}
		seen[e] = true
		emails = append(emails, e)
	}
	if len(emails) == 0 {
		return domain.ErrValidation("at least one email address is required")
	}
	in.Emails = emails

	props := make(map[string]string, len(in.Properties))
	for k, v := range in.Properties {
		k = strings.TrimSpace(k)
		if k == "" {
			return domain.ErrValidation("property keys must not be empty")
		}
		props[k] = encodeProperty(v)
	}
	in.Properties = props
	return nil
}

// encodeProperty keeps JSON text as is and quotes anything else, so
// DecodeProperty hands back what the admin typed.
func encodeProperty(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && json.Valid([]byte(v)) {
		return v
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func (s *AdminService) CreateUser(ctx context.Context, actor Actor, in UserInput) (domain.User, error) {
	if err := in.normalize(); err != nil {
		return domain.User{}, err
	}
	if in.Password == "" {
		return domain.User{}, domain.ErrValidation("password is required")
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     in.Username,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DisplayName:  in.DisplayName,
		DomainID:     in.DomainID,
		IsActive:     in.Active,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireDomain(ctx, tx, in.DomainID); err != nil {
			return err
		}
		if err := requireFreeIdentity(ctx, tx, "", in.Username, in.Emails); err != nil {
			return err
		}

		if err := tx.Users().Create(ctx, user); err != nil {
			return userWriteError(err, in.Username)
		}
		if err := writeEmails(ctx, tx, user.ID, in.Emails, nil); err != nil {
			return err
		}
		if err := writeProperties(ctx, tx, user.ID, in.Properties); err != nil {
			return err
		}
		return s.Audit.Record(ctx, tx, actor, EntityUser, user.ID, domain.AuditCreate, map[string]any{
			"username":   user.Username,
			"domain_id":  user.DomainID,
			"is_active":  user.IsActive,
			"emails":     in.Emails,
			"properties": sortedKeys(in.Properties),
		})
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", "user_id", user.ID, "username", user.Username, "by", actor.Username)
	return user, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, actor Actor, id string, in UserInput) (domain.User, error) {
	if err := in.normalize(); err != nil {
		return domain.User{}, err
	}

	var hash string
	if in.Password != "" {
		var err error
		if hash, err = cryptox.HashPassword(in.Password); err != nil {
			return domain.User{}, err
		}
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return notFound(err, "user not found")
		}
		if err := requireDomain(ctx, tx, in.DomainID); err != nil {
			return err
		}
		if err := requireFreeIdentity(ctx, tx, id, in.Username, in.Emails); err != nil {
			return err
		}

		previous, err := tx.Emails().ListByUser(ctx, id)
		if err != nil {
			return err
		}

		updated = current
		updated.Username = in.Username
		updated.FirstName = in.FirstName
		updated.LastName = in.LastName
		updated.DisplayName = in.DisplayName
		updated.DomainID = in.DomainID
		updated.IsActive = in.Active
		if hash != "" {
			updated.PasswordHash = hash
		}
		if err := tx.Users().Update(ctx, updated); err != nil {
			return userWriteError(err, in.Username)
		}

		if err := tx.Emails().DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := writeEmails(ctx, tx, id, in.Emails, previous); err != nil {
			return err
		}
		if err := tx.Properties().DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := writeProperties(ctx, tx, id, in.Properties); err != nil {
			return err
		}

		changes := map[string]any{
			"username":   map[string]string{"from": current.Username, "to": updated.Username},
			"domain_id":  map[string]string{"from": current.DomainID, "to": updated.DomainID},
			"is_active":  map[string]bool{"from": current.IsActive, "to": updated.IsActive},
			"emails":     in.Emails,
			"properties": sortedKeys(in.Properties),
		}
		if hash != "" {
			changes["password"] = "changed"
		}
		return s.Audit.Record(ctx, tx, actor, EntityUser, id, domain.AuditUpdate, changes)
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

// DeleteUser removes the user; emails, properties and memberships go with
// it through the schema. Admins cannot delete the account they are signed
// in with.
func (s *AdminService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return notFound(err, "user not found")
		}
		if current.Username == actor.Username {
			return domain.ErrConflict("you cannot delete your own account")
		}
		if err := tx.Users().Delete(ctx, id); err != nil {
			return notFound(err, "user not found")
		}
		return s.Audit.Record(ctx, tx, actor, EntityUser, id, domain.AuditDelete, map[string]any{
			"username":  current.Username,
			"domain_id": current.DomainID,
		})
	})
}

// requireFreeIdentity rejects a username or address held by a user other
// than selfID.
func requireFreeIdentity(ctx context.Context, st store.Store, selfID, username string, emails []string) error {
	if u, err := st.Users().GetByUsername(ctx, username); err == nil && u.ID != selfID {
		return domain.ErrConflict("username %q is taken", username)
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	for _, e := range emails {
		if u, err := st.Users().GetByEmail(ctx, e); err == nil && u.ID != selfID {
			return domain.ErrConflict("email %q belongs to another user", e)
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}

// writeEmails inserts the addresses in order, the first as primary.
// Verification carries over from previous for addresses that were kept.
func writeEmails(ctx context.Context, st store.Store, userID string, emails []string, previous []domain.Email) error {
	kept := make(map[string]domain.Email, len(previous))
	for _, e := range previous {
		kept[e.Email] = e
	}
	for i, addr := range emails {
		e := domain.Email{
			ID:        idx.New().String(),
			UserID:    userID,
			Email:     addr,
			IsPrimary: i == 0,
		}
		if old, ok := kept[addr]; ok && old.IsVerified {
			e.IsVerified = true
			e.VerifiedAt = old.VerifiedAt
			if e.VerifiedAt == nil {
				now := time.Now().UTC()
				e.VerifiedAt = &now
			}
		}
		if err := st.Emails().Create(ctx, e); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrConflict("email %q belongs to another user", addr)
			}
			return err
		}
	}
	return nil
}

func writeProperties(ctx context.Context, st store.Store, userID string, props map[string]string) error {
	for _, k := range sortedKeys(props) {
		if err := st.Properties().Upsert(ctx, domain.Property{
			ID:     idx.New().String(),
			UserID: userID,
			Key:    k,
			Value:  props[k],
		}); err != nil {
			return err
		}
	}
	return nil
}

func userWriteError(err error, username string) error {
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.ErrConflict("username %q is taken", username)
	case errors.Is(err, store.ErrConstraint):
		return domain.ErrIntegrity("domain does not exist")
	}
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
