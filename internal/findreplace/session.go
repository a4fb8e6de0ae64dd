package findreplace

// Session is the state of an open find/replace dialog. It is never
// persisted and is reset when the dialog closes.
type Session struct {
	Open          bool
	FindText      string
	ReplaceText   string
	CaseSensitive bool
	MatchCount    int
	Replacing     bool
}

// Reset clears the session
func (s *Session) Reset() {
	*s = Session{}
}

// Recount refreshes MatchCount against content
func (s *Session) Recount(content string) int {
	s.MatchCount = Count(content, s.FindText, s.CaseSensitive)
	return s.MatchCount
}
