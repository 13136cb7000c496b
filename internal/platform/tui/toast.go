package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/session"
)

// toastTTL is how long a toast stays on screen.
const toastTTL = 2500 * time.Millisecond

type toast struct {
	text    string
	failure bool
	until   time.Time
}

// noticeText renders a session notice. Notices with nothing worth showing
// return false.
func noticeText(n session.Notice) (text string, failure bool, ok bool) {
	switch n := n.(type) {
	case session.PartialSpawnNotice:
		return fmt.Sprintf("Only %d of %d fit on the canvas", n.Count, n.Requested), false, true
	case session.CombinedNotice:
		return fmt.Sprintf("%s + %s = %s",
			catalog.Name(n.A), catalog.Name(n.B), catalog.Name(n.Result.DefinitionID)), false, true
	case session.DiscoveredNotice:
		return fmt.Sprintf("New element discovered: %s!", n.Definition.Name), false, true
	case session.DeletedNotice:
		return "Deleted " + catalog.Name(n.Instance.DefinitionID), false, true
	case session.FavoriteNotice:
		if n.Added {
			return "★ " + catalog.Name(n.DefinitionID) + " added to favorites", false, true
		}
		return catalog.Name(n.DefinitionID) + " removed from favorites", false, true
	case session.HintNotice:
		return fmt.Sprintf("Hint: %s  (%d/%d used today)", n.Hint, n.Quota.Used, n.Quota.Limit), false, true
	case session.FailureNotice:
		return n.Message(), true, true
	default:
		return "", false, false
	}
}

// pushNotices turns pending notices into toasts.
func (m *Model) pushNotices(now time.Time) {
	for _, n := range m.sess.DrainNotices() {
		if text, failure, ok := noticeText(n); ok {
			m.toasts = append(m.toasts, toast{text: text, failure: failure, until: now.Add(toastTTL)})
		}
	}
}

// expireToasts drops toasts past their deadline.
func (m *Model) expireToasts(now time.Time) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.until) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}
