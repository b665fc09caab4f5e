package cli

import (
	"fmt"
	"io"

	"github.com/xyz-asif/trackback/internal/models"
)

// BannerNotifier prints one banner per match.
type BannerNotifier struct {
	w io.Writer
}

func NewBannerNotifier(w io.Writer) *BannerNotifier {
	return &BannerNotifier{w: w}
}

func (n *BannerNotifier) Notify(m models.Match) {
	contact := m.Contact
	if contact == "" {
		contact = "no contact given"
	}

	if m.Kind == models.KindFound {
		fmt.Fprintf(n.w, "*** Match! Found %q was reported lost by %s. Contact them: %s\n", m.Name, m.Reporter, contact)
		return
	}
	fmt.Fprintf(n.w, "*** Match! Lost %q was reported found by %s. Contact: %s\n", m.Name, m.Reporter, contact)
}
