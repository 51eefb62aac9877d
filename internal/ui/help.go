package ui

// HelpScreen is a full-screen key reference overlay
type HelpScreen struct {
	visible bool
}

// NewHelpScreen creates a hidden help screen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// Toggle flips visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// IsVisible reports whether the overlay is shown
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

var helpLines = []string{
	"blocktree keys",
	"",
	"  j / k         move selection down / up",
	"  space         toggle expand on a container",
	"  o             add a block after the selection",
	"  O             add a block inside the selected container",
	"  x             delete the selected block and its subtree",
	"  d             pick up the selected block (drag)",
	"  J / K         move the drop target down / up while dragging",
	"  h / l         shift the drop target across nesting levels",
	"  enter         drop the block at the marked position",
	"  esc           cancel the drag",
	"  tab / S-tab   indent / outdent the selected block",
	"  u / ctrl-r    undo / redo",
	"  /             search blocks",
	"  s             save",
	"  E / C         expand all / collapse all",
	"  ?             toggle this help",
	"  q             quit",
}

// Render draws the help overlay centered on screen
func (h *HelpScreen) Render(s *Screen) {
	if !h.visible {
		return
	}

	width, height := s.Size()
	startY := (height - len(helpLines)) / 2
	if startY < 0 {
		startY = 0
	}

	for i, line := range helpLines {
		x := (width - StringWidth(line)) / 2
		if x < 0 {
			x = 0
		}
		style := s.BlockNormalStyle()
		if i == 0 {
			style = s.HeaderStyle()
		}
		s.DrawString(x, startY+i, line, style)
	}
}
