package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afrorhythm/afro/auth"
	. "github.com/smartystreets/goconvey/convey"
)

func token(t string) TokenFunc {
	return func() (string, error) { return t, nil }
}

func noToken() (string, error) {
	return "", auth.ErrNoSession
}

func TestEnvelopeHandling(t *testing.T) {
	Convey("Given a server answering the standard envelope", t, func() {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			switch r.URL.Path {
			case "/tracks":
				fmt.Fprint(w, `{"success":true,"data":[{"id":1,"title":"Lagos Nights"}]}`)
			case "/me/favorites":
				fmt.Fprint(w, `{"success":true,"data":[1,2]}`)
			case "/broken":
				fmt.Fprint(w, `{"success":false,"message":"something went wrong"}`)
			default:
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"success":false,"message":"not found"}`)
			}
		}))
		defer server.Close()

		client := NewClientWith(server.URL, server.Client(), token("abc"))

		Convey("A successful payload is decoded", func() {
			tracks, err := client.Tracks()
			So(err, ShouldBeNil)
			So(len(tracks), ShouldEqual, 1)
			So(tracks[0].Title, ShouldEqual, "Lagos Nights")
		})

		Convey("Authenticated calls carry the bearer token", func() {
			ids, err := client.Favorites()
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []int64{1, 2})
			So(gotAuth, ShouldEqual, "Bearer abc")
		})

		Convey("A non-success envelope surfaces its message", func() {
			err := client.request(http.MethodGet, "/broken", nil, nil, false)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "something went wrong")
		})
	})
}

func TestUnauthorized(t *testing.T) {
	Convey("Given no stored session credential", t, func() {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := NewClientWith(server.URL, server.Client(), noToken)

		Convey("Authenticated calls fail without touching the network", func() {
			_, err := client.Favorites()
			So(err, ShouldWrap, ErrUnauthorized)
			So(called, ShouldBeFalse)
		})
	})

	Convey("Given a server rejecting the credential", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClientWith(server.URL, server.Client(), token("expired"))

		Convey("A 401 response maps to ErrUnauthorized", func() {
			err := client.Follow(1)
			So(err, ShouldWrap, ErrUnauthorized)
		})
	})
}
