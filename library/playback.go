package library

import (
	"fmt"

	"github.com/afrorhythm/afro/history"
	"github.com/afrorhythm/afro/key"
	"github.com/afrorhythm/afro/log"
	"github.com/spf13/viper"
)

// RecordPlay logs a play of the given track. The local history entry is
// never lost: the remote play-count increment is attempted for authenticated
// sessions but its failure is only logged, not retried and not surfaced.
// Anonymous sessions skip the remote call entirely.
func (l *Library) RecordPlay(trackID int64) error {
	track, err := l.catalog.Track(trackID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	entry := history.NewEntry(track, l.catalog.ArtistName(track))

	l.mu.Lock()
	l.entries = history.Insert(l.entries, entry, historyCap())
	track.PlayCount++ // local shadow, reconciled on the next catalog fetch
	l.mu.Unlock()

	if viper.GetBool(key.HistorySaveOnPlay) {
		if err := history.Save(entry, historyCap()); err != nil {
			log.Warnf("history not persisted: %v", err)
		}
	}

	if l.session.IsPresent() {
		if err := l.remote.RecordPlay(trackID); err != nil {
			log.Warnf("remote play count not recorded for track %d: %v", trackID, err)
		}
	}

	l.changed()
	return nil
}

// RemoveHistoryEntry deletes every history record of the given track.
func (l *Library) RemoveHistoryEntry(trackID int64) error {
	l.mu.Lock()
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.TrackID != trackID {
			kept = append(kept, e)
		}
	}
	l.entries = kept
	l.mu.Unlock()

	if err := history.Remove(trackID); err != nil {
		return err
	}

	l.changed()
	return nil
}

// ClearHistory empties the listening history. For authenticated sessions the
// remote store is cleared first; a remote failure leaves the local history
// untouched. Callers are expected to have confirmed the action with the user.
func (l *Library) ClearHistory() error {
	if l.session.IsPresent() {
		if err := l.remote.ClearHistory(); err != nil {
			return err
		}
	}

	if err := history.Clear(); err != nil {
		return err
	}

	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()

	l.changed()
	return nil
}
