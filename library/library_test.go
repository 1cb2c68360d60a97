package library

import (
	"errors"
	"testing"
	"time"

	"github.com/afrorhythm/afro/api"
	"github.com/afrorhythm/afro/auth"
	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/filesystem"
	"github.com/afrorhythm/afro/history"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

var errRemote = errors.New("remote unavailable")

// fakeRemote scripts the remote store: it records every call and fails any
// operation listed in fail.
type fakeRemote struct {
	calls []string
	fail  map[string]error

	favorites     []int64
	follows       []int64
	liked         []int64
	playlists     []*catalog.Playlist
	records       []api.HistoryRecord
	notifications []*api.Notification
}

func (f *fakeRemote) call(name string) error {
	f.calls = append(f.calls, name)
	if err, ok := f.fail[name]; ok {
		return err
	}
	return nil
}

func (f *fakeRemote) Favorites() ([]int64, error) {
	return f.favorites, f.call("Favorites")
}
func (f *fakeRemote) AddFavorite(int64) error    { return f.call("AddFavorite") }
func (f *fakeRemote) RemoveFavorite(int64) error { return f.call("RemoveFavorite") }

func (f *fakeRemote) Follows() ([]int64, error) { return f.follows, f.call("Follows") }
func (f *fakeRemote) Follow(int64) error        { return f.call("Follow") }
func (f *fakeRemote) Unfollow(int64) error      { return f.call("Unfollow") }

func (f *fakeRemote) LikedPlaylists() ([]int64, error) { return f.liked, f.call("LikedPlaylists") }
func (f *fakeRemote) LikePlaylist(int64) error         { return f.call("LikePlaylist") }
func (f *fakeRemote) UnlikePlaylist(int64) error       { return f.call("UnlikePlaylist") }

func (f *fakeRemote) Playlists() ([]*catalog.Playlist, error) {
	return f.playlists, f.call("Playlists")
}

func (f *fakeRemote) CreatePlaylist(name, description string, public bool, trackIDs []int64) (*catalog.Playlist, error) {
	if err := f.call("CreatePlaylist"); err != nil {
		return nil, err
	}
	return &catalog.Playlist{ID: 100, Name: name, Description: description, Public: public, TrackIDs: trackIDs}, nil
}

func (f *fakeRemote) UpdatePlaylist(int64, string, string, bool) error {
	return f.call("UpdatePlaylist")
}
func (f *fakeRemote) DeletePlaylist(int64) error           { return f.call("DeletePlaylist") }
func (f *fakeRemote) AddPlaylistTrack(int64, int64) error  { return f.call("AddPlaylistTrack") }
func (f *fakeRemote) RemovePlaylistTrack(int64, int64) error {
	return f.call("RemovePlaylistTrack")
}

func (f *fakeRemote) History() ([]api.HistoryRecord, error) { return f.records, f.call("History") }
func (f *fakeRemote) RecordPlay(int64) error                { return f.call("RecordPlay") }
func (f *fakeRemote) ClearHistory() error                   { return f.call("ClearHistory") }

func (f *fakeRemote) Notifications() ([]*api.Notification, error) {
	return f.notifications, f.call("Notifications")
}
func (f *fakeRemote) CreateNotification(string, string) error { return f.call("CreateNotification") }
func (f *fakeRemote) MarkNotificationRead(int64) error        { return f.call("MarkNotificationRead") }
func (f *fakeRemote) MarkAllNotificationsRead() error         { return f.call("MarkAllNotificationsRead") }

func (f *fakeRemote) countCalls(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func testCatalog() *catalog.Catalog {
	tracks := []*catalog.Track{
		{ID: 1, Title: "Lagos Nights", ArtistID: 1, Duration: 210},
		{ID: 2, Title: "Desert Rose", ArtistID: 2, Duration: 195},
		{ID: 3, Title: "Third Son", ArtistID: 1, Duration: 180},
	}
	artists := []*catalog.Artist{
		{ID: 1, Name: "Ayra Vibes", Followers: 10},
		{ID: 2, Name: "Kofi Sound", Followers: 0},
	}
	playlists := []*catalog.Playlist{
		{ID: 20, Name: "Afro Heat", TrackIDs: []int64{1, 2}, Likes: 3, Public: true},
	}
	return catalog.New(tracks, artists, playlists)
}

func session() mo.Option[*auth.Session] {
	return mo.Some(&auth.Session{UserID: 9, Username: "ayo"})
}

func newTestLibrary(remote *fakeRemote) *Library {
	return New(remote, testCatalog(), session())
}

func TestFavoritesIdempotence(t *testing.T) {
	Convey("Given an authenticated library", t, func() {
		remote := &fakeRemote{}
		lib := newTestLibrary(remote)

		Convey("Toggling the same track twice restores the original set", func() {
			So(lib.ToggleFavorite(1), ShouldBeNil)
			So(lib.IsFavorite(1), ShouldBeTrue)

			So(lib.ToggleFavorite(1), ShouldBeNil)
			So(lib.IsFavorite(1), ShouldBeFalse)
			So(lib.Favorites(), ShouldBeEmpty)

			Convey("Exactly one add and one remove were issued, in that order", func() {
				So(remote.calls, ShouldResemble, []string{"AddFavorite", "RemoveFavorite"})
			})
		})

		Convey("An unknown track is rejected before any remote call", func() {
			err := lib.ToggleFavorite(99)
			So(err, ShouldWrap, ErrValidation)
			So(remote.calls, ShouldBeEmpty)
		})
	})
}

func TestFavoritesMilestone(t *testing.T) {
	Convey("Given an authenticated library over a larger catalog", t, func() {
		tracks := make([]*catalog.Track, 0, 6)
		for i := int64(1); i <= 6; i++ {
			tracks = append(tracks, &catalog.Track{ID: i, Title: "Track", ArtistID: 1})
		}
		cat := catalog.New(tracks, []*catalog.Artist{{ID: 1, Name: "Ayra Vibes"}}, nil)
		remote := &fakeRemote{}
		lib := New(remote, cat, session())

		Convey("The fifth favorite raises a milestone notification", func() {
			for i := int64(1); i <= 4; i++ {
				So(lib.ToggleFavorite(i), ShouldBeNil)
			}
			So(remote.countCalls("CreateNotification"), ShouldEqual, 0)

			So(lib.ToggleFavorite(5), ShouldBeNil)
			So(remote.countCalls("CreateNotification"), ShouldEqual, 1)
			So(lib.UnreadCount(), ShouldEqual, 1)

			Convey("Re-adding back up to a milestone count fires again", func() {
				So(lib.ToggleFavorite(5), ShouldBeNil)
				So(lib.ToggleFavorite(5), ShouldBeNil)
				So(remote.countCalls("CreateNotification"), ShouldEqual, 2)
			})
		})
	})
}

func TestToggleFollowRollback(t *testing.T) {
	Convey("Given a remote that rejects follow calls", t, func() {
		remote := &fakeRemote{fail: map[string]error{"Follow": errRemote}}
		lib := newTestLibrary(remote)
		artist, _ := lib.Catalog().Artist(1)
		before := artist.Followers

		Convey("A failed toggle leaves the set and the shadow count unchanged", func() {
			err := lib.ToggleFollow(1)
			So(err, ShouldNotBeNil)
			So(lib.IsFollowing(1), ShouldBeFalse)
			So(artist.Followers, ShouldEqual, before)
		})
	})

	Convey("Given a cooperative remote", t, func() {
		remote := &fakeRemote{}
		lib := newTestLibrary(remote)

		Convey("Following adjusts the shadow count up, unfollowing back down", func() {
			So(lib.ToggleFollow(1), ShouldBeNil)
			artist, _ := lib.Catalog().Artist(1)
			So(artist.Followers, ShouldEqual, 11)

			So(lib.ToggleFollow(1), ShouldBeNil)
			So(artist.Followers, ShouldEqual, 10)
		})

		Convey("The shadow count never goes below zero", func() {
			artist, _ := lib.Catalog().Artist(2)
			artist.Followers = 0
			So(lib.ToggleFollow(2), ShouldBeNil)
			So(lib.ToggleFollow(2), ShouldBeNil)
			So(artist.Followers, ShouldBeGreaterThanOrEqualTo, 0)
		})
	})
}

func TestUnauthenticated(t *testing.T) {
	Convey("Given a library with no session", t, func() {
		remote := &fakeRemote{}
		lib := New(remote, testCatalog(), mo.None[*auth.Session]())
		So(history.Clear(), ShouldBeNil)

		Convey("RecordPlay updates local history without any remote call", func() {
			So(lib.RecordPlay(1), ShouldBeNil)
			So(len(lib.History()), ShouldEqual, 1)
			So(lib.History()[0].TrackID, ShouldEqual, 1)
			So(remote.calls, ShouldBeEmpty)
		})

		Convey("ToggleFavorite rejects with an authorization error without any remote call", func() {
			err := lib.ToggleFavorite(1)
			So(err, ShouldWrap, ErrAuthRequired)
			So(remote.calls, ShouldBeEmpty)
		})

		Convey("Playlist mutations reject the same way", func() {
			So(lib.CreatePlaylist("x", "", false, nil), ShouldWrap, ErrAuthRequired)
			So(lib.ToggleFollow(1), ShouldWrap, ErrAuthRequired)
			So(remote.calls, ShouldBeEmpty)
		})
	})
}

func TestPartialBootstrap(t *testing.T) {
	Convey("Given a remote whose playlists fetch fails", t, func() {
		So(history.Clear(), ShouldBeNil)
		remote := &fakeRemote{
			favorites: []int64{1, 2},
			follows:   []int64{1},
			records: []api.HistoryRecord{
				{TrackID: 2, PlayedAt: time.Now()},
			},
			notifications: []*api.Notification{
				{ID: 1, Title: "Welcome", Read: false},
			},
			fail: map[string]error{"Playlists": errRemote},
		}
		lib := newTestLibrary(remote)

		Convey("LoadAll degrades only the failed collection", func() {
			lib.LoadAll()

			So(lib.Playlists(), ShouldBeEmpty)
			So(len(lib.Favorites()), ShouldEqual, 2)
			So(lib.IsFollowing(1), ShouldBeTrue)
			So(len(lib.History()), ShouldEqual, 1)
			So(lib.History()[0].Title, ShouldEqual, "Desert Rose")
			So(lib.UnreadCount(), ShouldEqual, 1)
		})
	})
}

func TestBootstrapHistoryBounds(t *testing.T) {
	Convey("Given a remote history larger than the cap", t, func() {
		So(history.Clear(), ShouldBeNil)
		records := make([]api.HistoryRecord, 0, 60)
		base := time.Now()
		for i := 0; i < 60; i++ {
			records = append(records, api.HistoryRecord{
				TrackID:  int64(i + 1),
				PlayedAt: base.Add(-time.Duration(i) * time.Minute),
			})
		}
		remote := &fakeRemote{records: records}
		lib := newTestLibrary(remote)

		Convey("LoadAll caps the in-memory history like the disk copy", func() {
			lib.LoadAll()

			So(len(lib.History()), ShouldEqual, history.DefaultCap)
			So(lib.History()[0].TrackID, ShouldEqual, 1)

			persisted, err := history.Get()
			So(err, ShouldBeNil)
			So(len(persisted), ShouldEqual, history.DefaultCap)
		})
	})

	Convey("Given a remote history with repeated tracks", t, func() {
		So(history.Clear(), ShouldBeNil)
		base := time.Now()
		remote := &fakeRemote{records: []api.HistoryRecord{
			{TrackID: 2, PlayedAt: base},
			{TrackID: 1, PlayedAt: base.Add(-time.Minute)},
			{TrackID: 2, PlayedAt: base.Add(-2 * time.Minute)},
		}}
		lib := newTestLibrary(remote)

		Convey("LoadAll keeps only the most recent play per track", func() {
			lib.LoadAll()

			So(len(lib.History()), ShouldEqual, 2)
			So(lib.History()[0].TrackID, ShouldEqual, 2)
			So(lib.History()[1].TrackID, ShouldEqual, 1)
		})
	})
}

func TestBootstrapLikedPlaylists(t *testing.T) {
	Convey("Given a remote whose liked playlists fetch fails", t, func() {
		So(history.Clear(), ShouldBeNil)
		remote := &fakeRemote{
			playlists: []*catalog.Playlist{
				{ID: 30, Name: "Morning Drive", OwnerID: 1},
			},
			liked: []int64{20},
			fail:  map[string]error{"LikedPlaylists": errRemote},
		}
		lib := newTestLibrary(remote)

		Convey("Owned playlists still load while likes degrade to empty", func() {
			lib.LoadAll()

			So(len(lib.Playlists()), ShouldEqual, 1)
			So(lib.Playlists()[0].Name, ShouldEqual, "Morning Drive")
			So(lib.LikesPlaylist(20), ShouldBeFalse)
		})

		Convey("With likes reachable and owned playlists failing, only ownership degrades", func() {
			remote.fail = map[string]error{"Playlists": errRemote}
			lib.LoadAll()

			So(lib.Playlists(), ShouldBeEmpty)
			So(lib.LikesPlaylist(20), ShouldBeTrue)
		})
	})
}

func TestRecordPlayRemoteFailure(t *testing.T) {
	Convey("Given a remote that rejects play recording", t, func() {
		So(history.Clear(), ShouldBeNil)
		remote := &fakeRemote{fail: map[string]error{"RecordPlay": errRemote}}
		lib := newTestLibrary(remote)

		Convey("The play is still recorded locally", func() {
			So(lib.RecordPlay(3), ShouldBeNil)
			So(len(lib.History()), ShouldEqual, 1)
			So(remote.countCalls("RecordPlay"), ShouldEqual, 1)
		})
	})
}

func TestPlaylistOperations(t *testing.T) {
	Convey("Given an authenticated library", t, func() {
		remote := &fakeRemote{}
		lib := newTestLibrary(remote)

		Convey("Creating a playlist requires a non-empty name", func() {
			So(lib.CreatePlaylist("   ", "", false, nil), ShouldWrap, ErrValidation)
			So(remote.calls, ShouldBeEmpty)
		})

		Convey("A created playlist joins the owned list", func() {
			So(lib.CreatePlaylist("Road Trip", "for driving", true, []int64{1}), ShouldBeNil)
			So(len(lib.Playlists()), ShouldEqual, 1)
			So(lib.Playlists()[0].Name, ShouldEqual, "Road Trip")

			Convey("Tracks can be added and removed", func() {
				id := lib.Playlists()[0].ID
				So(lib.AddTrackToPlaylist(id, 2), ShouldBeNil)
				So(lib.Playlists()[0].TrackIDs, ShouldResemble, []int64{1, 2})

				So(lib.AddTrackToPlaylist(id, 2), ShouldWrap, ErrValidation)

				So(lib.RemoveTrackFromPlaylist(id, 1), ShouldBeNil)
				So(lib.Playlists()[0].TrackIDs, ShouldResemble, []int64{2})
			})

			Convey("Deleting removes it from the owned list", func() {
				id := lib.Playlists()[0].ID
				So(lib.DeletePlaylist(id), ShouldBeNil)
				So(lib.Playlists(), ShouldBeEmpty)
			})
		})

		Convey("Mutating a playlist outside the owned list is rejected", func() {
			So(lib.AddTrackToPlaylist(20, 1), ShouldWrap, ErrNotOwner)
			So(lib.DeletePlaylist(20), ShouldWrap, ErrNotOwner)
			So(remote.countCalls("DeletePlaylist"), ShouldEqual, 0)
		})
	})
}

func TestClearHistory(t *testing.T) {
	Convey("Given an authenticated library with history", t, func() {
		So(history.Clear(), ShouldBeNil)
		remote := &fakeRemote{}
		lib := newTestLibrary(remote)
		So(lib.RecordPlay(1), ShouldBeNil)

		Convey("A remote failure leaves local history untouched", func() {
			remote.fail = map[string]error{"ClearHistory": errRemote}
			So(lib.ClearHistory(), ShouldNotBeNil)
			So(len(lib.History()), ShouldEqual, 1)
		})

		Convey("On success both sides are emptied", func() {
			So(lib.ClearHistory(), ShouldBeNil)
			So(lib.History(), ShouldBeEmpty)
		})
	})
}

func TestNotificationsBestEffort(t *testing.T) {
	Convey("Given a remote that rejects read-flag syncs", t, func() {
		remote := &fakeRemote{
			notifications: []*api.Notification{
				{ID: 1, Read: false},
				{ID: 2, Read: false},
			},
		}
		lib := newTestLibrary(remote)
		lib.LoadAll()
		remote.fail = map[string]error{
			"MarkNotificationRead":     errRemote,
			"MarkAllNotificationsRead": errRemote,
		}

		Convey("The local flip is applied anyway", func() {
			So(lib.MarkNotificationRead(1), ShouldBeNil)
			So(lib.UnreadCount(), ShouldEqual, 1)

			So(lib.MarkAllRead(), ShouldBeNil)
			So(lib.UnreadCount(), ShouldEqual, 0)
		})
	})
}

func TestReset(t *testing.T) {
	Convey("Given a populated library", t, func() {
		remote := &fakeRemote{favorites: []int64{1}}
		lib := newTestLibrary(remote)
		lib.LoadAll()
		So(lib.Authenticated(), ShouldBeTrue)

		Convey("Reset returns it to the anonymous zero state", func() {
			lib.Reset()
			So(lib.Authenticated(), ShouldBeFalse)
			So(lib.Favorites(), ShouldBeEmpty)
			So(lib.Notifications(), ShouldBeEmpty)
		})
	})
}
