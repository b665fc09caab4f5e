// Package backend provides the two persistence capabilities a client can run
// with: the local store alone, or a remote TrackBack API that is authoritative
// and mirrored into the local store as a cache.
package backend

import (
	"context"
	"fmt"

	"github.com/xyz-asif/trackback/internal/client/store"
	"github.com/xyz-asif/trackback/internal/models"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
)

const (
	ModeLocal   = "local"
	ModeBackend = "backend"
)

// Backend is selected once at startup; callers never check the mode.
type Backend interface {
	Signup(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context)
	// Report persists a fully built item. On success the local store
	// reflects it.
	Report(ctx context.Context, item models.Item) error
	// Sync refreshes the local store from the authoritative source.
	Sync(ctx context.Context) error
	Mode() string
}

// Options configure New.
type Options struct {
	Mode       string
	BackendURL string
	Client     HTTPDoer
	Logger     *logger.Logger
}

// New returns the backend for opts.Mode bound to st.
func New(st *store.Store, opts Options) (Backend, error) {
	switch opts.Mode {
	case "", ModeLocal:
		return NewLocal(st), nil
	case ModeBackend:
		if opts.BackendURL == "" {
			return nil, fmt.Errorf("backend mode requires a backend url")
		}
		return NewRemote(st, opts.BackendURL, opts.Client, opts.Logger), nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want %s or %s)", opts.Mode, ModeLocal, ModeBackend)
	}
}
