package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/cryptox"
	"github.com/aussiebroadwan/directory/pkg/idx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// DefaultBootstrapAccount receives the admin role when seeded.
const DefaultBootstrapAccount = "admin@localhost"

var defaultRoles = []struct{ name, description string }{
	{domain.RoleAdmin, "Administrator with full access"},
	{domain.RoleUser, "Standard user"},
	{domain.RoleGuest, "Guest user with limited access"},
}

// profileProperties are the OIDC claims copied from a seed record into the
// user's property bag.
var profileProperties = []string{
	"address", "birthdate", "email_verified", "gender", "locale",
	"middle_name", "nickname", "phone_number", "phone_number_verified",
	"picture", "profile", "updated_at", "website", "zoneinfo",
}

// SeedAccount is one record of a seed file. Unknown keys land in Claims.
type SeedAccount struct {
	Email             string         `yaml:"email" mapstructure:"email"`
	PreferredUsername string         `yaml:"preferred_username" mapstructure:"preferred_username"`
	Password          string         `yaml:"password" mapstructure:"password"`
	Name              string         `yaml:"name" mapstructure:"name"`
	GivenName         string         `yaml:"given_name" mapstructure:"given_name"`
	FamilyName        string         `yaml:"family_name" mapstructure:"family_name"`
	Claims            map[string]any `yaml:",inline" mapstructure:",remain"`
}

// Username is the login name stored for the account.
func (a SeedAccount) Username() string {
	if a.Email != "" {
		return a.Email
	}
	return a.PreferredUsername
}

type SeedOptions struct {
	DomainName       string        `yaml:"domain_name"`
	BootstrapAccount string        `yaml:"bootstrap_account"`
	UsersFile        string        `yaml:"users_file"`
	Accounts         []SeedAccount `yaml:"accounts"`
}

// SeedReport summarises a SeedAccounts run.
type SeedReport struct {
	Created int
	Skipped int
	Failed  int
}

type SeedService struct {
	Store store.Store
}

// LoadSeedFile reads a JSON or YAML array of account records.
func LoadSeedFile(path string) ([]SeedAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeedAccounts(data)
}

// ParseSeedAccounts decodes a JSON or YAML array of account records.
func ParseSeedAccounts(data []byte) ([]SeedAccount, error) {
	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed accounts: %w", err)
	}

	accounts := make([]SeedAccount, 0, len(records))
	for i, rec := range records {
		var acc SeedAccount
		if err := mapstructure.Decode(rec, &acc); err != nil {
			return nil, fmt.Errorf("seed account %d: %w", i, err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// EnsureSchema applies any pending migrations.
func (s *SeedService) EnsureSchema(ctx context.Context) error {
	if err := s.Store.ApplyMigrations(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	slogx.FromContext(ctx).Debug("schema is current")
	return nil
}

// EnsureDefaultDomain creates the named domain when missing and returns its id.
func (s *SeedService) EnsureDefaultDomain(ctx context.Context, name string) (string, error) {
	if name == "" {
		name = domain.DefaultDomainName
	}

	existing, err := s.Store.Domains().GetByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	d := domain.Domain{
		ID:          idx.New().String(),
		Name:        name,
		Description: fmt.Sprintf("Default %s domain", name),
		IsDefault:   true,
	}
	if err := s.Store.Domains().Create(ctx, d); err != nil {
		return "", fmt.Errorf("create default domain: %w", err)
	}

	slogx.FromContext(ctx).Info("created default domain", slog.String("domain", name))
	return d.ID, nil
}

// EnsureDefaultRoles creates admin, user and guest when missing and returns
// a name to id map.
func (s *SeedService) EnsureDefaultRoles(ctx context.Context) (map[string]string, error) {
	l := slogx.FromContext(ctx)
	ids := make(map[string]string, len(defaultRoles))

	for _, def := range defaultRoles {
		existing, err := s.Store.Roles().GetByName(ctx, def.name)
		if err == nil {
			ids[def.name] = existing.ID
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		r := domain.Role{ID: idx.New().String(), Name: def.name, Description: def.description}
		if err := s.Store.Roles().Create(ctx, r); err != nil {
			return nil, fmt.Errorf("create role %s: %w", def.name, err)
		}
		ids[def.name] = r.ID
		l.Info("created role", slog.String("role", def.name))
	}
	return ids, nil
}

// SeedAccounts creates every account that does not exist yet. A failed
// account is logged and the batch continues.
func (s *SeedService) SeedAccounts(
	ctx context.Context,
	domainID string,
	roleIDs map[string]string,
	bootstrap string,
	accounts []SeedAccount,
) SeedReport {
	l := slogx.FromContext(ctx)
	if bootstrap == "" {
		bootstrap = DefaultBootstrapAccount
	}

	var report SeedReport
	for _, acc := range accounts {
		username := acc.Username()
		if username == "" {
			l.Warn("skipping seed account without email or username")
			report.Failed++
			continue
		}

		exists, err := s.accountExists(ctx, username, acc.Email)
		if err != nil {
			l.Error("failed to check seed account", slog.String("username", username), slog.Any("error", err))
			report.Failed++
			continue
		}
		if exists {
			l.Info("account already exists", slog.String("username", username))
			report.Skipped++
			continue
		}

		role := domain.RoleUser
		if username == bootstrap {
			role = domain.RoleAdmin
		}

		if err := s.seedAccount(ctx, domainID, roleIDs[role], acc); err != nil {
			l.Error("failed to seed account", slog.String("username", username), slog.Any("error", err))
			report.Failed++
			continue
		}

		l.Info("seeded account", slog.String("username", username), slog.String("role", role))
		report.Created++
	}
	return report
}

// Run prepares the schema, default domain and roles, then seeds accounts
// from opts.Accounts and opts.UsersFile.
func (s *SeedService) Run(ctx context.Context, opts SeedOptions) (SeedReport, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return SeedReport{}, err
	}
	domainID, err := s.EnsureDefaultDomain(ctx, opts.DomainName)
	if err != nil {
		return SeedReport{}, err
	}
	roleIDs, err := s.EnsureDefaultRoles(ctx)
	if err != nil {
		return SeedReport{}, err
	}

	accounts := opts.Accounts
	if opts.UsersFile != "" {
		loaded, err := LoadSeedFile(opts.UsersFile)
		if err != nil {
			return SeedReport{}, err
		}
		accounts = append(accounts, loaded...)
	}

	report := s.SeedAccounts(ctx, domainID, roleIDs, opts.BootstrapAccount, accounts)
	slogx.FromContext(ctx).Info("seed completed",
		slog.Int("created", report.Created),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *SeedService) accountExists(ctx context.Context, username, email string) (bool, error) {
	if _, err := s.Store.Users().GetByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}
	if email == "" {
		return false, nil
	}
	return s.Store.Emails().Exists(ctx, email)
}

func (s *SeedService) seedAccount(ctx context.Context, domainID, roleID string, acc SeedAccount) error {
	password := acc.Password
	if password == "" {
		generated, err := cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		password = generated
		slogx.FromContext(ctx).Warn("seed account has no password; a random one was set",
			slog.String("username", acc.Username()))
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	displayName := acc.Name
	if displayName == "" {
		displayName = strings.TrimSpace(acc.GivenName + " " + acc.FamilyName)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     acc.Username(),
		PasswordHash: hash,
		FirstName:    acc.GivenName,
		LastName:     acc.FamilyName,
		DisplayName:  displayName,
		DomainID:     domainID,
		IsActive:     true,
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}

		if acc.Email != "" {
			verified, _ := acc.Claims["email_verified"].(bool)
			if err := tx.Emails().Create(ctx, domain.Email{
				ID:         idx.New().String(),
				UserID:     user.ID,
				Email:      acc.Email,
				IsPrimary:  true,
				IsVerified: verified,
			}); err != nil {
				return err
			}
		}

		for _, key := range profileProperties {
			v, ok := acc.Claims[key]
			if !ok {
				continue
			}
			value, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encode property %s: %w", key, err)
			}
			if err := tx.Properties().Upsert(ctx, domain.Property{
				ID:     idx.New().String(),
				UserID: user.ID,
				Key:    key,
				Value:  string(value),
			}); err != nil {
				return err
			}
		}

		if roleID == "" {
			return nil
		}
		return tx.UserRoles().Assign(ctx, user.ID, roleID)
	})
}
