package reports

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/trackback/internal/client/backend"
	"github.com/xyz-asif/trackback/internal/client/store"
	"github.com/xyz-asif/trackback/internal/config"
	"github.com/xyz-asif/trackback/internal/features/auth"
	"github.com/xyz-asif/trackback/internal/features/items"
	"github.com/xyz-asif/trackback/internal/models"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
	"github.com/xyz-asif/trackback/internal/routes"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

// startAPI serves the real router over memory repositories.
func startAPI(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		StorageDriver: config.StorageMemory,
		JWTSecret:     "test-secret",
		JWTExpire:     time.Hour,
	}
	srv := httptest.NewServer(routes.NewRouter(testContext(t), cfg, routes.Deps{
		Users: auth.NewMemoryRepository(),
		Items: items.NewMemoryRepository(),
		Log:   logger.New(logger.ERROR),
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

type remoteClient struct {
	store *store.Store
	svc   *Service
	notes *recorder
}

func newRemoteClient(t *testing.T, baseURL string) *remoteClient {
	t.Helper()

	log := logger.New(logger.ERROR)
	st := store.New(store.NewMemoryMedium(), log)
	require.NoError(t, st.Load())

	be, err := backend.New(st, backend.Options{Mode: backend.ModeBackend, BackendURL: baseURL, Logger: log})
	require.NoError(t, err)

	notes := &recorder{}
	return &remoteClient{store: st, svc: NewService(st, be, notes, log), notes: notes}
}

func TestRemote_SubmitReportRequiresSession(t *testing.T) {
	c := newRemoteClient(t, startAPI(t))

	_, _, err := c.svc.SubmitReport(context.Background(), models.KindLost, Fields{Name: "Keys"})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	assert.Empty(t, c.store.LostItems())
}

func TestRemote_RedWalletScenario(t *testing.T) {
	ctx := context.Background()
	api := startAPI(t)

	alice := newRemoteClient(t, api)
	require.NoError(t, alice.svc.Signup(ctx, "alice", "pw-alice"))
	require.NoError(t, alice.svc.Login(ctx, "alice", "pw-alice"))
	_, matches, err := alice.svc.SubmitReport(ctx, models.KindLost, Fields{
		Name:     "Red Wallet",
		Location: "Library",
		Contact:  "alice@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, matches)
	require.Len(t, alice.store.LostItems(), 1)

	bob := newRemoteClient(t, api)
	require.NoError(t, bob.svc.Signup(ctx, "bob", "pw-bob"))
	require.NoError(t, bob.svc.Login(ctx, "bob", "pw-bob"))
	_, matches, err = bob.svc.SubmitReport(ctx, models.KindFound, Fields{
		Name:     "red wallet",
		Location: "Library Cafe",
		Contact:  "bob@example.com",
	})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "alice", matches[0].Reporter)
	assert.Equal(t, "alice@example.com", matches[0].Contact)
	assert.Equal(t, bob.notes.matches, matches)

	found := bob.svc.SearchItems("wallet", "library")
	require.Len(t, found, 2)
	assert.Equal(t, "bob", found[0].Reporter)
	assert.Equal(t, "alice", found[1].Reporter)

	history := bob.svc.RecentHistoryFor("alice", 20)
	require.Len(t, history, 1)
	assert.Equal(t, "Red Wallet", history[0].Item.Name)
}
