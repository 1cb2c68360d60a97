package auth

// Session identifies the authenticated AfroRhythm user for the lifetime of the process.
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
