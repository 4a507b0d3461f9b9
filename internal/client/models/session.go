package models

// Session is the signed-in pair. It is always replaced as a whole.
type Session struct {
	User  *User
	Token string
}

// Valid reports whether both halves of the session are present.
func (s Session) Valid() bool {
	return s.User != nil && s.Token != ""
}
