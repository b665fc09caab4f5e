package models

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

// Kind tells which board a report belongs to.
type Kind string

const (
	KindFound Kind = "found"
	KindLost  Kind = "lost"
)

// ParseKind validates a raw kind string.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindFound, KindLost:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", apperrors.ErrValidation, s)
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindFound || k == KindLost
}

// Opposite returns the kind a report of kind k is matched against.
func (k Kind) Opposite() Kind {
	if k == KindFound {
		return KindLost
	}
	return KindFound
}

// Item is a single lost or found report. Items are immutable once stored.
// @Description Lost or found item report
type Item struct {
	ID          string    `bson:"_id" json:"id" example:"0192a6f4-3b1e-7c2d-9f00-1a2b3c4d5e6f"`
	Name        string    `bson:"name" json:"name" example:"Red Wallet"`
	Description string    `bson:"description" json:"description" example:"Leather, two cards inside"`
	Location    string    `bson:"location" json:"location" example:"Library"`
	Contact     string    `bson:"contact" json:"contact" example:"alice@example.com"`
	ImageData   string    `bson:"imageData,omitempty" json:"imageData,omitempty"`
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Reporter    string    `bson:"reporter" json:"reporter" example:"alice"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt" example:"2025-01-01T00:00:00Z"`
	Kind        Kind      `bson:"kind" json:"kind" example:"lost" enums:"found,lost"`
}

// Validate checks the fields every stored report must carry.
func (i *Item) Validate() error {
	if !i.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", apperrors.ErrValidation, i.Kind)
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name", apperrors.ErrMissingField)
	}
	return nil
}

// NormalizedName is the form used when comparing reports for a match.
func (i *Item) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(i.Name))
}

// HistoryEntry records a report submission for the activity feed.
type HistoryEntry struct {
	Type Kind      `json:"type"`
	Item Item      `json:"item"`
	When time.Time `json:"when"`
}

// Match pairs a freshly submitted report with an opposite-kind report of the
// same normalized name.
type Match struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Reporter string `json:"reporter"`
	Contact  string `json:"contact"`
	ItemID   string `json:"itemId"`
	OtherID  string `json:"otherId"`
}
