// Package store holds the client's users, reports and history in memory and
// mirrors every change to a durable Medium.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/xyz-asif/trackback/internal/models"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

// Keys under which the four collections are persisted.
const (
	KeyUsers   = "tb_users_v1"
	KeyFound   = "tb_found_v1"
	KeyLost    = "tb_lost_v1"
	KeyHistory = "tb_history_v1"
)

// HistoryLimit bounds the history log; the oldest entries are evicted first.
const HistoryLimit = 200

type state struct {
	users   map[string]string
	found   []models.Item
	lost    []models.Item
	history []models.HistoryEntry
}

func emptyState() state {
	return state{
		users:   map[string]string{},
		found:   []models.Item{},
		lost:    []models.Item{},
		history: []models.HistoryEntry{},
	}
}

// Store is the single state container of a client session.
type Store struct {
	mu     sync.RWMutex
	medium Medium
	log    *logger.Logger
	state
}

// New returns an empty store bound to medium. Call Load before use.
func New(medium Medium, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	return &Store{medium: medium, log: log, state: emptyState()}
}

// Load replaces the in-memory state with the contents of the medium.
// Missing keys load as empty collections. If a stored value fails to parse,
// all four collections are reset to empty and an error wrapping
// ErrCorruptLocalState is returned; the store is usable either way.
// A failing medium read is returned as is and leaves the state untouched.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.read()
	if err != nil {
		if !errors.Is(err, apperrors.ErrCorruptLocalState) {
			return err
		}
		s.state = emptyState()
		s.log.Warn("discarding local state: %v", err)
		return err
	}

	s.state = loaded
	s.log.Debug("loaded %d users, %d found, %d lost, %d history entries",
		len(loaded.users), len(loaded.found), len(loaded.lost), len(loaded.history))
	return nil
}

func (s *Store) read() (state, error) {
	st := emptyState()

	if err := s.decode(KeyUsers, &st.users); err != nil {
		return st, err
	}
	if err := s.decode(KeyFound, &st.found); err != nil {
		return st, err
	}
	if err := s.decode(KeyLost, &st.lost); err != nil {
		return st, err
	}
	if err := s.decode(KeyHistory, &st.history); err != nil {
		return st, err
	}

	// a literal "null" decodes to nil
	if st.users == nil {
		st.users = map[string]string{}
	}
	if st.found == nil {
		st.found = []models.Item{}
	}
	if st.lost == nil {
		st.lost = []models.Item{}
	}
	if st.history == nil {
		st.history = []models.HistoryEntry{}
	}

	for _, it := range st.found {
		if it.Kind != models.KindFound {
			return st, fmt.Errorf("%w: %s holds item %s of kind %q", apperrors.ErrCorruptLocalState, KeyFound, it.ID, it.Kind)
		}
	}
	for _, it := range st.lost {
		if it.Kind != models.KindLost {
			return st, fmt.Errorf("%w: %s holds item %s of kind %q", apperrors.ErrCorruptLocalState, KeyLost, it.ID, it.Kind)
		}
	}
	if len(st.history) > HistoryLimit {
		st.history = st.history[:HistoryLimit]
	}

	return st, nil
}

func (s *Store) decode(key string, dst any) error {
	raw, ok, err := s.medium.Get(key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w: parse %s: %v", apperrors.ErrCorruptLocalState, key, err)
	}
	return nil
}

// Save writes all four collections to the medium, overwriting prior values.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.write(s.state)
}

func (s *Store) write(st state) error {
	entries := []struct {
		key   string
		value any
	}{
		{KeyUsers, st.users},
		{KeyFound, st.found},
		{KeyLost, st.lost},
		{KeyHistory, st.history},
	}

	for _, e := range entries {
		raw, err := json.Marshal(e.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", e.key, err)
		}
		if err := s.medium.Set(e.key, string(raw)); err != nil {
			return err
		}
	}
	return nil
}

// commit persists next and only then makes it the in-memory state, so a
// failed write leaves memory and medium as they were.
func (s *Store) commit(next state) error {
	if err := s.write(next); err != nil {
		// restore whatever was there before the partial write
		if rerr := s.write(s.state); rerr != nil {
			s.log.Error("failed to restore local state: %v", rerr)
		}
		return err
	}
	s.state = next
	return nil
}

// ReplaceFromSnapshot rebuilds the item collections and the history log from
// a flat server listing and caches the result in the medium. Items of an
// unknown kind are skipped.
func (s *Store) ReplaceFromSnapshot(items []models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := state{
		users:   s.users,
		found:   []models.Item{},
		lost:    []models.Item{},
		history: make([]models.HistoryEntry, 0, len(items)),
	}

	for _, it := range items {
		switch it.Kind {
		case models.KindFound:
			next.found = append(next.found, it)
		case models.KindLost:
			next.lost = append(next.lost, it)
		default:
			s.log.Warn("snapshot item %s has unknown kind %q", it.ID, it.Kind)
			continue
		}
		next.history = append(next.history, models.HistoryEntry{Type: it.Kind, Item: it, When: it.CreatedAt})
	}

	slices.SortStableFunc(next.history, func(a, b models.HistoryEntry) int {
		return b.Item.CreatedAt.Compare(a.Item.CreatedAt)
	})
	if len(next.history) > HistoryLimit {
		next.history = next.history[:HistoryLimit]
	}

	return s.commit(next)
}

// AddUser registers a new account.
func (s *Store) AddUser(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return apperrors.ErrDuplicateUser
	}

	next := s.state
	next.users = maps.Clone(s.users)
	next.users[username] = password

	return s.commit(next)
}

// VerifyUser reports whether the credentials match a registered account.
func (s *Store) VerifyUser(username, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.users[username]
	return ok && stored == password
}

// AppendReport stores item in the collection matching its kind and records
// it at the front of the history log.
func (s *Store) AppendReport(item models.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	switch item.Kind {
	case models.KindFound:
		next.found = append(slices.Clip(s.found), item)
	case models.KindLost:
		next.lost = append(slices.Clip(s.lost), item)
	}

	entry := models.HistoryEntry{Type: item.Kind, Item: item, When: item.CreatedAt}
	history := make([]models.HistoryEntry, 0, min(len(s.history)+1, HistoryLimit))
	history = append(history, entry)
	history = append(history, s.history[:min(len(s.history), HistoryLimit-1)]...)
	next.history = history

	return s.commit(next)
}

// Users returns a copy of the user table.
func (s *Store) Users() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.users)
}

// FoundItems returns the found reports in insertion order.
func (s *Store) FoundItems() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.found)
}

// LostItems returns the lost reports in insertion order.
func (s *Store) LostItems() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lost)
}

// Items returns the reports of the given kind.
func (s *Store) Items(kind models.Kind) []models.Item {
	if kind == models.KindFound {
		return s.FoundItems()
	}
	return s.LostItems()
}

// History returns the history log, newest first.
func (s *Store) History() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history)
}

// Close releases the medium.
func (s *Store) Close() error {
	return s.medium.Close()
}
