package catalog

// SocialLinks holds the optional public profiles of an artist.
// Absent links are empty strings rather than probed dynamic properties.
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Artist represents a catalog artist. The follower count is authoritative on
// the remote store; the library adjusts a local shadow copy on follow and
// unfollow for immediate feedback, reconciled on the next full reload.
type Artist struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Followers int64        `json:"followers"`
	Biography string       `json:"biography,omitempty"`
	Social    *SocialLinks `json:"social,omitempty"`
}

func (a *Artist) String() string {
	return a.Name
}
