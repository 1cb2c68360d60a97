package api

import (
	"net/http"

	"github.com/afrorhythm/afro/catalog"
)

// Tracks retrieves the full public track catalog.
func (c *Client) Tracks() ([]*catalog.Track, error) {
	var tracks []*catalog.Track
	if err := c.request(http.MethodGet, "/tracks", nil, &tracks, false); err != nil {
		return nil, err
	}
	return tracks, nil
}

// Artists retrieves the full public artist catalog.
func (c *Client) Artists() ([]*catalog.Artist, error) {
	var artists []*catalog.Artist
	if err := c.request(http.MethodGet, "/artists", nil, &artists, false); err != nil {
		return nil, err
	}
	return artists, nil
}

// PublicPlaylists retrieves all publicly visible playlists.
func (c *Client) PublicPlaylists() ([]*catalog.Playlist, error) {
	var playlists []*catalog.Playlist
	if err := c.request(http.MethodGet, "/playlists/public", nil, &playlists, false); err != nil {
		return nil, err
	}
	return playlists, nil
}

// FetchCatalog loads tracks, artists and public playlists in one pass and
// returns the assembled in-memory catalog.
func (c *Client) FetchCatalog() (*catalog.Catalog, error) {
	tracks, err := c.Tracks()
	if err != nil {
		return nil, err
	}

	artists, err := c.Artists()
	if err != nil {
		return nil, err
	}

	playlists, err := c.PublicPlaylists()
	if err != nil {
		return nil, err
	}

	_ = catalog.SaveSnapshot(tracks, artists, playlists)
	return catalog.New(tracks, artists, playlists), nil
}
