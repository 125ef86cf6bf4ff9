package backend

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/pkg/directorysdk"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// DefaultRemoteTimeout bounds each call to the remote directory.
const DefaultRemoteTimeout = 5 * time.Second

// Remote delegates every question to a directory service over HTTP.
type Remote struct {
	client *directorysdk.Client
}

func NewRemote(cfg RemoteConfig, hc *http.Client) (*Remote, error) {
	if cfg.URL == "" {
		return nil, errors.New("remote directory requires a URL")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	opts := []directorysdk.Option{
		directorysdk.WithToken(cfg.Token),
		directorysdk.WithEndpoints(cfg.Endpoints),
		directorysdk.WithTimeout(timeout),
	}
	if hc != nil {
		opts = append(opts, directorysdk.WithHTTPClient(hc))
	}

	return &Remote{client: directorysdk.NewClient(cfg.URL, opts...)}, nil
}

func (r *Remote) Count(ctx context.Context) int {
	n, err := r.client.Count(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("remote directory count failed", "error", err)
		return 0
	}
	return n
}

func (r *Remote) Find(ctx context.Context, id string) (domain.Account, error) {
	record, err := r.client.Find(ctx, id)
	if errors.Is(err, directorysdk.ErrNotFound) && looksLikeEmail(id) {
		record, err = r.client.FindByEmail(ctx, id)
	}
	if err != nil {
		return domain.Account{}, remoteError("remote find", err)
	}
	return mapRemote("remote find", record)
}

func (r *Remote) Validate(ctx context.Context, email, password string) (domain.Account, error) {
	record, err := r.client.Validate(ctx, email, password)
	if err != nil {
		return domain.Account{}, remoteError("remote validate", err)
	}
	return mapRemote("remote validate", record)
}

// remoteError maps 404 and other 4xx answers to not-found; 5xx and
// transport failures are transient.
func remoteError(op string, err error) error {
	if errors.Is(err, directorysdk.ErrNotFound) {
		return domain.ErrAccountNotFound
	}
	var apiErr *directorysdk.APIError
	if errors.As(err, &apiErr) && !directorysdk.IsServerError(err) {
		return domain.ErrAccountNotFound
	}
	return domain.ErrTransient(op, err)
}

func mapRemote(op string, record map[string]any) (domain.Account, error) {
	acc, err := MapRemoteAccount(record)
	if err != nil {
		return domain.Account{}, domain.ErrTransient(op, err)
	}
	return acc, nil
}
