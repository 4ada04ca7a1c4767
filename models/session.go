package models

// Session is the persisted credential of a logged-in user. Token may be empty
// when the backend authenticated the user without issuing one.
type Session struct {
	Token       string `json:"token,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// Empty reports whether nothing is persisted.
func (s Session) Empty() bool {
	return s.Token == "" && s.DisplayName == ""
}
