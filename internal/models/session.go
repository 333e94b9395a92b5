package models

// Session is the in-memory record of current authentication status.
//
// Invariant: IsAuthenticated is true if and only if both User and Tokens are
// present. The three fields are always set or cleared together; observers
// never see a mixed state.
type Session struct {
	User            *User       `json:"user"`
	Tokens          *AuthTokens `json:"tokens"`
	IsAuthenticated bool        `json:"is_authenticated"`
	IsLoading       bool        `json:"is_loading"`
}

// Consistent reports whether the session satisfies the authentication
// invariant. Used when rehydrating persisted state.
func (s *Session) Consistent() bool {
	if s.IsAuthenticated {
		return s.User != nil && s.Tokens != nil
	}
	return s.User == nil && s.Tokens == nil
}

// PersistedSession is the durable subset of Session written under the fixed
// storage key. IsLoading is deliberately absent: it always resets to false
// on cold start.
type PersistedSession struct {
	Tokens          *AuthTokens `json:"tokens"`
	User            *User       `json:"user"`
	IsAuthenticated bool        `json:"is_authenticated"`
}
