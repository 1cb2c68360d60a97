package library

import "github.com/afrorhythm/afro/log"

// MarkNotificationRead flips a notification's read flag. The local flip is
// applied regardless of the remote outcome: unread state is cosmetic, so a
// failed remote call is logged instead of rolled back. This is a deliberate
// asymmetry from the collection mutations.
func (l *Library) MarkNotificationRead(id int64) error {
	if err := l.requireSession(); err != nil {
		return err
	}

	l.mu.Lock()
	for _, n := range l.notifications {
		if n.ID == id {
			n.Read = true
		}
	}
	l.mu.Unlock()

	if err := l.remote.MarkNotificationRead(id); err != nil {
		log.Warnf("notification %d read flag not synced: %v", id, err)
	}

	l.changed()
	return nil
}

// MarkAllRead flips every notification's read flag, with the same
// best-effort remote semantics as MarkNotificationRead.
func (l *Library) MarkAllRead() error {
	if err := l.requireSession(); err != nil {
		return err
	}

	l.mu.Lock()
	for _, n := range l.notifications {
		n.Read = true
	}
	l.mu.Unlock()

	if err := l.remote.MarkAllNotificationsRead(); err != nil {
		log.Warnf("mark-all-read not synced: %v", err)
	}

	l.changed()
	return nil
}
