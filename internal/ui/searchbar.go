package ui

import (
	"fmt"
)

// SearchBar is the incremental search input at the bottom of the screen
type SearchBar struct {
	active bool
	query  string
	count  int
}

// NewSearchBar creates an inactive search bar
func NewSearchBar() *SearchBar {
	return &SearchBar{}
}

// Activate opens the search bar with an empty query
func (sb *SearchBar) Activate() {
	sb.active = true
	sb.query = ""
	sb.count = 0
}

// Deactivate closes the search bar
func (sb *SearchBar) Deactivate() {
	sb.active = false
	sb.query = ""
	sb.count = 0
}

// IsActive reports whether the search bar is open
func (sb *SearchBar) IsActive() bool {
	return sb.active
}

// Query returns the current query text
func (sb *SearchBar) Query() string {
	return sb.query
}

// Append adds a rune to the query
func (sb *SearchBar) Append(r rune) {
	sb.query += string(r)
}

// Backspace removes the last rune from the query
func (sb *SearchBar) Backspace() {
	runes := []rune(sb.query)
	if len(runes) > 0 {
		sb.query = string(runes[:len(runes)-1])
	}
}

// SetResultCount records how many blocks match the current query
func (sb *SearchBar) SetResultCount(n int) {
	sb.count = n
}

// Render draws the search bar on the given line
func (sb *SearchBar) Render(s *Screen, y int) {
	if !sb.active {
		return
	}
	s.DrawString(0, y, "/", s.SearchLabelStyle())
	s.DrawString(1, y, sb.query, s.SearchTextStyle())

	counter := fmt.Sprintf(" %d match(es)", sb.count)
	x := s.GetWidth() - StringWidth(counter)
	if x > 1+StringWidth(sb.query) {
		s.DrawString(x, y, counter, s.SearchResultCountStyle())
	}
}
