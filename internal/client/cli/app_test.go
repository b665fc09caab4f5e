package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/trackback/internal/config"
	"github.com/xyz-asif/trackback/internal/models"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a, err := NewApp(context.Background(), config.ClientConfig{Mode: config.ModeLocal}, Options{
		In:        strings.NewReader(input),
		Out:       &out,
		Ephemeral: true,
		Logger:    logger.New(logger.ERROR),
		Now:       func() time.Time { return time.Now().Add(2 * time.Hour) },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, &out
}

func lines(s ...string) string { return strings.Join(s, "\n") + "\n" }

func TestApp_RedWalletSession(t *testing.T) {
	a, out := newTestApp(t, lines(
		"alice", "pw-a", // signup
		"alice", "pw-a", // login
		"Red Wallet", "Brown leather", "Library", "alice@example.com", "",
		"bob", "pw-b", // signup
		"bob", "pw-b", // login
		"red wallet", "", "Library Cafe", "bob@example.com", "",
	))
	ctx := context.Background()

	require.NoError(t, a.Signup(ctx))
	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.Report(ctx, models.KindLost))
	require.NoError(t, a.Logout(ctx))

	require.NoError(t, a.Signup(ctx))
	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.Report(ctx, models.KindFound))

	text := out.String()
	assert.Contains(t, text, "Account created! Please login.")
	assert.Contains(t, text, "Welcome back, alice!")
	assert.Contains(t, text, `Lost item "Red Wallet" reported!`)
	assert.Contains(t, text, `*** Match! Found "red wallet" was reported lost by alice. Contact them: alice@example.com`)

	out.Reset()
	require.NoError(t, a.Search("wallet", "library"))
	assert.Equal(t, 2, strings.Count(out.String(), "[Found]")+strings.Count(out.String(), "[Lost]"))

	out.Reset()
	require.NoError(t, a.History("alice", 20))
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	assert.Contains(t, out.String(), "Red Wallet")

	out.Reset()
	require.NoError(t, a.Feed(0))
	assert.Contains(t, out.String(), "2h ago")
}

func TestApp_ReportRequiresLogin(t *testing.T) {
	a, out := newTestApp(t, "")

	err := a.Report(context.Background(), models.KindLost)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	assert.Contains(t, out.String(), "Please login to report.")
}

func TestApp_DuplicateSignup(t *testing.T) {
	a, out := newTestApp(t, lines("alice", "one", "alice", "two"))
	ctx := context.Background()

	require.NoError(t, a.Signup(ctx))
	assert.ErrorIs(t, a.Signup(ctx), apperrors.ErrDuplicateUser)
	assert.Contains(t, out.String(), "Username already exists")
}

func TestApp_MissingName(t *testing.T) {
	a, out := newTestApp(t, lines("alice", "pw", "alice", "pw", "   ", "", "", "", ""))
	ctx := context.Background()

	require.NoError(t, a.Signup(ctx))
	require.NoError(t, a.Login(ctx))
	assert.ErrorIs(t, a.Report(ctx, models.KindLost), apperrors.ErrMissingField)
	assert.Contains(t, out.String(), "Missing required field: name")
}

func TestApp_HistoryNeedsUser(t *testing.T) {
	a, _ := newTestApp(t, "")
	assert.Error(t, a.History("", 0))
}

func TestApp_PersistsAcrossRestarts(t *testing.T) {
	cfg := config.ClientConfig{Mode: config.ModeLocal, DataPath: filepath.Join(t.TempDir(), "tb.db")}
	open := func(input string) (*App, *bytes.Buffer) {
		var out bytes.Buffer
		a, err := NewApp(context.Background(), cfg, Options{In: strings.NewReader(input), Out: &out, Logger: logger.New(logger.ERROR)})
		require.NoError(t, err)
		return a, &out
	}

	a, _ := open(lines("alice", "pw", "alice", "pw", "Keys", "", "Gym", "", ""))
	require.NoError(t, a.Signup(context.Background()))
	require.NoError(t, a.Login(context.Background()))
	require.NoError(t, a.Report(context.Background(), models.KindFound))
	require.NoError(t, a.Close())

	b, out := open("")
	defer b.Close()
	assert.False(t, b.isLoggedIn(), "sessions are not persisted")
	require.NoError(t, b.Search("keys", ""))
	assert.Contains(t, out.String(), "[Found] Keys")
}

func TestReadPhoto(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n0000"), 0o600))
	dataURL, err := readPhoto(png)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	txt := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))
	_, err = readPhoto(txt)
	assert.Error(t, err)
}

func TestBannerNotifier(t *testing.T) {
	var out bytes.Buffer
	n := NewBannerNotifier(&out)

	n.Notify(models.Match{Name: "Keys", Kind: models.KindLost, Reporter: "bob"})
	assert.Equal(t, "*** Match! Lost \"Keys\" was reported found by bob. Contact: no contact given\n", out.String())
}
