package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/thesandybridge/blocktree/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a new Screen instance with a specific theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position with the given style
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.SetCell(col, y, r, style)
		col += RuneWidth(r)
	}
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) {
	if maxWidth <= 0 {
		return
	}
	s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// DefaultStyle returns the default terminal style
func DefaultStyle() tcell.Style {
	return tcell.StyleDefault
}

// StyleBold returns a bold style
func StyleBold() tcell.Style {
	return tcell.StyleDefault.Bold(true)
}

// Theme-aware style methods

// BlockNormalStyle returns the style for normal rows
func (s *Screen) BlockNormalStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeNormalText, s.Theme.Colors.Background)
}

// BlockSelectedStyle returns the style for the selected row
func (s *Screen) BlockSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.TreeSelectedItem, s.Theme.Colors.TreeSelectedBg).Bold(true)
}

// LeafArrowStyle returns the style for leaf node markers
func (s *Screen) LeafArrowStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeLeafArrow)
}

// ExpandedArrowStyle returns the style for expanded container arrows
func (s *Screen) ExpandedArrowStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeExpandedArrow)
}

// CollapsedArrowStyle returns the style for collapsed container arrows
func (s *Screen) CollapsedArrowStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeCollapsedArrow)
}

// DragActiveStyle returns the style for the block being dragged
func (s *Screen) DragActiveStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DragActive, s.Theme.Colors.Background).Bold(true)
}

// DropIndicatorStyle returns the style for the drop position marker
func (s *Screen) DropIndicatorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DropIndicator).Bold(true)
}

// SearchLabelStyle returns the style for the search prompt
func (s *Screen) SearchLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchLabel)
}

// SearchTextStyle returns the style for the search query text
func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchText)
}

// SearchResultCountStyle returns the style for the match counter
func (s *Screen) SearchResultCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchResultCount)
}

// StatusModeStyle returns the style for the mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusModifiedStyle returns the style for the modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusModified)
}

// HeaderStyle returns the style for the header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}
