package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/pkg/cryptox"
)

type localAccount struct {
	account  domain.Account
	password string
}

// Local serves a fixed account list held in memory. Passwords are stored as
// given, so it is only fit for development and tests.
type Local struct {
	accounts []localAccount
}

// LoadLocal reads the account list from inline JSON or from a file.
func LoadLocal(cfg LocalConfig, logger *slog.Logger) (*Local, error) {
	payload := []byte(cfg.UsersJSON)
	if strings.TrimSpace(cfg.UsersJSON) == "" {
		if cfg.UsersFile == "" {
			return nil, errors.New("local directory requires USERS or USERS_FILE")
		}
		data, err := os.ReadFile(cfg.UsersFile)
		if err != nil {
			return nil, fmt.Errorf("read users file: %w", err)
		}
		payload = data
	}
	return NewLocal(payload, logger)
}

// NewLocal parses a JSON array of account records. Each record uses the same
// field names a remote directory would return, plus a plaintext password.
func NewLocal(payload []byte, logger *slog.Logger) (*Local, error) {
	var records []map[string]any
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("parse local accounts: %w", err)
	}

	accounts := make([]localAccount, 0, len(records))
	for i, record := range records {
		acc, err := MapRemoteAccount(record)
		if err != nil {
			return nil, fmt.Errorf("local account %d: %w", i, err)
		}
		if id := stringValue(record["id"]); id != "" {
			acc.ID = id
		}
		accounts = append(accounts, localAccount{
			account:  acc,
			password: stringValue(record["password"]),
		})
	}

	if logger != nil {
		logger.Warn("local directory in use; credentials are stored in plaintext and must not be used in production",
			"accounts", len(accounts),
		)
	}

	return &Local{accounts: accounts}, nil
}

func (l *Local) Count(ctx context.Context) int {
	return len(l.accounts)
}

func (l *Local) Find(ctx context.Context, id string) (domain.Account, error) {
	for _, a := range l.accounts {
		if a.account.ID == id {
			return a.account, nil
		}
	}
	if looksLikeEmail(id) {
		for _, a := range l.accounts {
			if a.account.Email == id {
				return a.account, nil
			}
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound
}

func (l *Local) Validate(ctx context.Context, email, password string) (domain.Account, error) {
	for _, a := range l.accounts {
		if a.account.Email != email {
			continue
		}
		if a.password != "" && cryptox.EqualSecrets(a.password, password) {
			return a.account, nil
		}
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return domain.Account{}, domain.ErrAccountNotFound
}
