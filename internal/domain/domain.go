package domain

import "time"

// User is a credential record. Login is the natural key; uniqueness is
// enforced by the credential store at insert time.
type User struct {
	Login     string
	PassHash  string
	CreatedAt time.Time
}

// Session maps an opaque token to the login it authenticates, or nil while
// anonymous. The token travels to the client inside a signed cookie.
type Session struct {
	Token string
	Login *string
}

func (s *Session) LoggedIn() bool {
	return s.Login != nil
}

// BlogPost is immutable once created. Slug doubles as the permalink and the
// identifier used for single-post lookups.
type BlogPost struct {
	Author    string
	Title     string
	Text      string
	CreatedAt time.Time
	Slug      string
}
