// Package reports turns report requests into stored items, detects lost/found
// matches and serves the search and feed views.
package reports

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xyz-asif/trackback/internal/client/backend"
	"github.com/xyz-asif/trackback/internal/client/store"
	"github.com/xyz-asif/trackback/internal/models"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

const (
	DefaultUserHistoryLimit   = 20
	DefaultGlobalHistoryLimit = 25
)

// Fields are the user-supplied parts of a report. Only Name is required.
type Fields struct {
	Name        string
	Description string
	Location    string
	Contact     string
	ImageData   string
}

// Notifier receives one call per detected match.
type Notifier interface {
	Notify(m models.Match)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(m models.Match)

func (f NotifierFunc) Notify(m models.Match) { f(m) }

// Service owns the session of one client and the report workflow on top of
// a store and a backend.
type Service struct {
	store    *store.Store
	backend  backend.Backend
	notifier Notifier
	log      *logger.Logger

	now   func() time.Time
	newID func() (string, error)

	mu      sync.RWMutex
	current string
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides report id generation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(st *store.Store, be backend.Backend, notifier Notifier, log *logger.Logger, opts ...Option) *Service {
	if notifier == nil {
		notifier = NotifierFunc(func(models.Match) {})
	}
	if log == nil {
		log = logger.Default()
	}

	s := &Service{
		store:    st,
		backend:  be,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    newTimeOrderedID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTimeOrderedID returns a UUIDv7, which sorts by creation time.
func newTimeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Signup registers an account. It never changes the session.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	username, password = strings.TrimSpace(username), strings.TrimSpace(password)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password", apperrors.ErrMissingField)
	}

	if err := s.backend.Signup(ctx, username, password); err != nil {
		return err
	}
	s.log.Info("account %s created", username)
	return nil
}

// Login opens a session for username when the backend accepts the credentials.
func (s *Service) Login(ctx context.Context, username, password string) error {
	username, password = strings.TrimSpace(username), strings.TrimSpace(password)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password", apperrors.ErrMissingField)
	}

	if err := s.backend.Login(ctx, username, password); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = username
	s.mu.Unlock()
	return nil
}

// Logout closes the session, if any.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()
	s.backend.Logout(ctx)
}

// CurrentUser returns the logged-in username.
func (s *Service) CurrentUser() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != ""
}

// Mode names the persistence capability in use.
func (s *Service) Mode() string {
	return s.backend.Mode()
}

// Sync refreshes local state from the backend.
func (s *Service) Sync(ctx context.Context) error {
	return s.backend.Sync(ctx)
}

// SubmitReport stores a new report by the current user and notifies about
// every opposite-kind report with the same name.
func (s *Service) SubmitReport(ctx context.Context, kind models.Kind, fields Fields) (*models.Item, []models.Match, error) {
	reporter, ok := s.CurrentUser()
	if !ok {
		return nil, nil, apperrors.ErrNotAuthenticated
	}
	if !kind.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown kind %q", apperrors.ErrValidation, kind)
	}

	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: name", apperrors.ErrMissingField)
	}

	id, err := s.newID()
	if err != nil {
		return nil, nil, fmt.Errorf("generate id: %w", err)
	}

	item := models.Item{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(fields.Description),
		Location:    strings.TrimSpace(fields.Location),
		Contact:     strings.TrimSpace(fields.Contact),
		ImageData:   fields.ImageData,
		Reporter:    reporter,
		CreatedAt:   s.now(),
		Kind:        kind,
	}

	if err := s.backend.Report(ctx, item); err != nil {
		return nil, nil, err
	}
	s.log.Info("%s item %q reported by %s", kind, item.Name, reporter)

	matches := s.DetectMatches(item, s.store.Items(kind.Opposite()))
	return &item, matches, nil
}

// DetectMatches emits one notification per entry of opposite whose
// normalized name equals newItem's. Every pair is reported.
func (s *Service) DetectMatches(newItem models.Item, opposite []models.Item) []models.Match {
	want := newItem.NormalizedName()
	var matches []models.Match

	for _, other := range opposite {
		if other.Name == "" || other.NormalizedName() != want {
			continue
		}
		m := models.Match{
			Name:     newItem.Name,
			Kind:     newItem.Kind,
			Reporter: other.Reporter,
			Contact:  other.Contact,
			ItemID:   newItem.ID,
			OtherID:  other.ID,
		}
		s.notifier.Notify(m)
		matches = append(matches, m)
	}
	return matches
}

// SearchItems filters found then lost reports, each in insertion order, by a
// case-insensitive name substring and an optional location substring.
func (s *Service) SearchItems(query, location string) []models.Item {
	q := strings.ToLower(query)
	loc := strings.ToLower(location)

	var out []models.Item
	for _, list := range [][]models.Item{s.store.FoundItems(), s.store.LostItems()} {
		for _, it := range list {
			if !strings.Contains(strings.ToLower(it.Name), q) {
				continue
			}
			if loc != "" && !strings.Contains(strings.ToLower(it.Location), loc) {
				continue
			}
			out = append(out, it)
		}
	}
	return out
}

// RecentHistoryFor returns username's history entries, newest first.
// A non-positive limit means DefaultUserHistoryLimit.
func (s *Service) RecentHistoryFor(username string, limit int) []models.HistoryEntry {
	if limit <= 0 {
		limit = DefaultUserHistoryLimit
	}

	var out []models.HistoryEntry
	for _, h := range s.store.History() {
		if h.Item.Reporter != username {
			continue
		}
		out = append(out, h)
		if len(out) == limit {
			break
		}
	}
	return out
}

// RecentGlobalHistory returns all reports sorted by createdAt, newest first.
// This is computed from the collections, not from the history log, so the two
// feeds can disagree when an entry's when differs from its createdAt.
// A non-positive limit means DefaultGlobalHistoryLimit.
func (s *Service) RecentGlobalHistory(limit int) []models.Item {
	if limit <= 0 {
		limit = DefaultGlobalHistoryLimit
	}

	all := append(s.store.FoundItems(), s.store.LostItems()...)
	slices.SortStableFunc(all, func(a, b models.Item) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
