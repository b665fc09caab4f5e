package backend

import (
	"context"

	"github.com/xyz-asif/trackback/internal/client/store"
	"github.com/xyz-asif/trackback/internal/models"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

// Local keeps everything in the client's store.
type Local struct {
	store *store.Store
}

func NewLocal(st *store.Store) *Local {
	return &Local{store: st}
}

func (l *Local) Signup(_ context.Context, username, password string) error {
	return l.store.AddUser(username, password)
}

func (l *Local) Login(_ context.Context, username, password string) error {
	if !l.store.VerifyUser(username, password) {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

func (l *Local) Logout(context.Context) {}

func (l *Local) Report(_ context.Context, item models.Item) error {
	return l.store.AppendReport(item)
}

// Sync is a no-op; the store was loaded at startup and is the source of truth.
func (l *Local) Sync(context.Context) error { return nil }

func (l *Local) Mode() string { return ModeLocal }
