// Package cli is the terminal client: cobra commands plus an interactive
// shell over one store and one session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/xyz-asif/trackback/internal/client/backend"
	"github.com/xyz-asif/trackback/internal/client/reports"
	"github.com/xyz-asif/trackback/internal/client/store"
	"github.com/xyz-asif/trackback/internal/config"
	"github.com/xyz-asif/trackback/internal/models"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

// Options are the I/O wiring of an App.
type Options struct {
	In  io.Reader
	Out io.Writer
	// TTY is the terminal behind In, if any. It enables echo-free
	// password prompts.
	TTY *os.File
	// Ephemeral keeps state in memory only.
	Ephemeral bool
	Logger    *logger.Logger
	// Now is the clock used for relative times in the feed.
	Now func() time.Time
}

// App owns the store and the session of one client process.
type App struct {
	store  *store.Store
	svc    *reports.Service
	prompt *prompter
	out    io.Writer
	log    *logger.Logger
	now    func() time.Time
}

func NewApp(ctx context.Context, cfg config.ClientConfig, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var medium store.Medium
	if opts.Ephemeral {
		medium = store.NewMemoryMedium()
	} else {
		sqlite, err := store.OpenSQLite(cfg.DataPath)
		if err != nil {
			return nil, err
		}
		log.Debug("local data at %s", sqlite.Path())
		medium = sqlite
	}

	st := store.New(medium, log)
	if err := st.Load(); err != nil {
		if !errors.Is(err, apperrors.ErrCorruptLocalState) {
			_ = st.Close()
			return nil, err
		}
		fmt.Fprintln(opts.Out, "Local data was unreadable and has been reset.")
	}

	be, err := backend.New(st, backend.Options{
		Mode:       cfg.Mode,
		BackendURL: cfg.BackendURL,
		Client:     &http.Client{Timeout: cfg.BackendTimeout},
		Logger:     log,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	a := &App{
		store:  st,
		svc:    reports.NewService(st, be, NewBannerNotifier(opts.Out), log),
		prompt: &prompter{in: bufio.NewReader(opts.In), out: opts.Out, tty: opts.TTY},
		out:    opts.Out,
		log:    log,
		now:    now,
	}

	if err := a.svc.Sync(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not refresh from backend, showing cached data: %v\n", err)
	}
	return a, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.svc.CurrentUser()
	return ok
}

func (a *App) status() string {
	if user, ok := a.svc.CurrentUser(); ok {
		return fmt.Sprintf("%s@%s", user, a.svc.Mode())
	}
	return "guest@" + a.svc.Mode()
}

// describe turns a domain error into a line for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateUser):
		return "Username already exists, try another."
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "Invalid credentials."
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		return "Please login to report."
	case errors.Is(err, apperrors.ErrMissingField):
		return "Missing required field: " + strings.TrimPrefix(err.Error(), apperrors.ErrMissingField.Error()+": ")
	case errors.Is(err, apperrors.ErrBackendUnavailable):
		return "Backend is unreachable, nothing was changed."
	default:
		return "Error: " + err.Error()
	}
}

// fail prints err for the user and returns it.
func (a *App) fail(err error) error {
	fmt.Fprintln(a.out, describe(err))
	return err
}

func (a *App) Signup(ctx context.Context) error {
	username, err := a.prompt.text("Username")
	if err != nil {
		return err
	}
	password, err := a.prompt.secret("Password")
	if err != nil {
		return err
	}

	if err := a.svc.Signup(ctx, username, password); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Account created! Please login.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := a.prompt.text("Username")
	if err != nil {
		return err
	}
	password, err := a.prompt.secret("Password")
	if err != nil {
		return err
	}

	if err := a.svc.Login(ctx, username, password); err != nil {
		return a.fail(err)
	}
	user, _ := a.svc.CurrentUser()
	fmt.Fprintf(a.out, "Welcome back, %s!\n", user)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.svc.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Report prompts for the fields of a report of kind and submits it.
func (a *App) Report(ctx context.Context, kind models.Kind) error {
	if !a.isLoggedIn() {
		return a.fail(apperrors.ErrNotAuthenticated)
	}

	var f reports.Fields
	for _, q := range []struct {
		label string
		dst   *string
	}{
		{"Item name", &f.Name},
		{"Description", &f.Description},
		{"Location", &f.Location},
		{"Contact", &f.Contact},
	} {
		v, err := a.prompt.text(q.label)
		if err != nil {
			return err
		}
		*q.dst = v
	}

	photo, err := a.prompt.text("Photo file (optional)")
	if err != nil {
		return err
	}
	if photo != "" {
		dataURL, err := readPhoto(photo)
		if err != nil {
			return a.fail(err)
		}
		f.ImageData = dataURL
	}

	item, _, err := a.svc.SubmitReport(ctx, kind, f)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "%s item %q reported!\n", kindLabel(item.Kind), item.Name)
	return nil
}

func (a *App) Search(query, location string) error {
	printItems(a.out, a.svc.SearchItems(query, location), "No matching reports.")
	return nil
}

// History prints the newest reports of username, or of the current user
// when username is empty.
func (a *App) History(username string, limit int) error {
	if username == "" {
		user, ok := a.svc.CurrentUser()
		if !ok {
			fmt.Fprintln(a.out, "Login or name a user to see history.")
			return apperrors.ErrNotAuthenticated
		}
		username = user
	}
	printHistory(a.out, a.svc.RecentHistoryFor(username, limit))
	return nil
}

func (a *App) Feed(limit int) error {
	items := a.svc.RecentGlobalHistory(limit)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No reports yet.")
		return nil
	}
	now := a.now()
	for _, it := range items {
		fmt.Fprintf(a.out, "%-5s %s\n      %s, %s, %s\n", kindLabel(it.Kind), it.Name, it.Reporter, orDash(it.Location), formatAge(now, it.CreatedAt))
	}
	return nil
}

func (a *App) Sync(ctx context.Context) error {
	if err := a.svc.Sync(ctx); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Synced: %d found, %d lost.\n", len(a.store.FoundItems()), len(a.store.LostItems()))
	return nil
}
