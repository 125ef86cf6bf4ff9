// Package backend implements the Directory contract over three sources: a
// fixed local list, a remote directory service and the relational store.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/directorysdk"
)

// Directory answers the protocol engine's account questions.
//
// Find and Validate return domain.ErrAccountNotFound for unknown accounts and
// for rejected credentials alike. Store or upstream failures are returned as
// *domain.TransientStoreError.
type Directory interface {
	// Count returns the number of active accounts, or 0 when the source
	// cannot be reached.
	Count(ctx context.Context) int
	Find(ctx context.Context, id string) (domain.Account, error)
	Validate(ctx context.Context, email, password string) (domain.Account, error)
}

// Backend kinds.
const (
	KindLocal      = "local"
	KindRemote     = "remote"
	KindRelational = "relational"
)

type Config struct {
	Kind   string       `yaml:"kind" json:"kind"`
	Local  LocalConfig  `yaml:"local" json:"local"`
	Remote RemoteConfig `yaml:"remote" json:"remote"`
}

type LocalConfig struct {
	// UsersJSON is an inline account list; it wins over UsersFile.
	UsersJSON string `yaml:"users_json" json:"users_json"`
	UsersFile string `yaml:"users_file" json:"users_file"`
}

type RemoteConfig struct {
	URL       string                 `yaml:"url" json:"url"`
	Token     string                 `yaml:"token" json:"token"`
	Timeout   time.Duration          `yaml:"timeout" json:"timeout"`
	Endpoints directorysdk.Endpoints `yaml:"endpoints" json:"endpoints"`
}

// Options carries the collaborators a backend may need.
type Options struct {
	Store      store.Store
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// New builds the backend selected by cfg.Kind.
func New(cfg Config, opts Options) (Directory, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case KindLocal:
		return LoadLocal(cfg.Local, logger)
	case KindRemote:
		return NewRemote(cfg.Remote, opts.HTTPClient)
	case KindRelational:
		if opts.Store == nil {
			return nil, errors.New("relational directory requires a store")
		}
		return NewRelational(opts.Store), nil
	default:
		return nil, fmt.Errorf("unknown directory backend %q", cfg.Kind)
	}
}

func looksLikeEmail(id string) bool {
	return strings.Contains(id, "@")
}

// transient wraps err unless it already is a transient failure.
func transient(op string, err error) error {
	if domain.IsTransient(err) {
		return err
	}
	return domain.ErrTransient(op, err)
}
