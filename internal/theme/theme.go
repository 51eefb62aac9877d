package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// Tree view colors
	TreeNormalText     tcell.Color
	TreeSelectedItem   tcell.Color
	TreeSelectedBg     tcell.Color
	TreeLeafArrow      tcell.Color
	TreeExpandedArrow  tcell.Color
	TreeCollapsedArrow tcell.Color

	// Drag and drop colors
	DragActive    tcell.Color
	DropIndicator tcell.Color

	// Search bar colors
	SearchLabel       tcell.Color
	SearchText        tcell.Color
	SearchResultCount tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background:         tcell.ColorDefault,
			TreeNormalText:     tcell.ColorDefault,
			TreeSelectedItem:   tcell.ColorDefault,
			TreeSelectedBg:     tcell.ColorDefault,
			TreeLeafArrow:      tcell.ColorDefault,
			TreeExpandedArrow:  tcell.ColorDefault,
			TreeCollapsedArrow: tcell.ColorDefault,
			DragActive:         tcell.ColorDefault,
			DropIndicator:      tcell.ColorDefault,
			SearchLabel:        tcell.ColorDefault,
			SearchText:         tcell.ColorDefault,
			SearchResultCount:  tcell.ColorDefault,
			StatusMode:         tcell.ColorDefault,
			StatusMessage:      tcell.ColorDefault,
			StatusModified:     tcell.ColorDefault,
			HeaderTitle:        tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Background:         HexToColor("#1a1b26"), // Dark background
			TreeNormalText:     HexToColor("#c0caf5"), // Light gray-blue
			TreeSelectedItem:   HexToColor("#7aa2f7"), // Blue
			TreeSelectedBg:     HexToColor("#292e42"), // Raised background
			TreeLeafArrow:      HexToColor("#565f89"), // Comment gray
			TreeExpandedArrow:  HexToColor("#7dcfff"), // Cyan
			TreeCollapsedArrow: HexToColor("#7dcfff"), // Cyan
			DragActive:         HexToColor("#e0af68"), // Yellow
			DropIndicator:      HexToColor("#9ece6a"), // Green
			SearchLabel:        HexToColor("#bb9af7"), // Magenta
			SearchText:         HexToColor("#c0caf5"), // Light gray-blue
			SearchResultCount:  HexToColor("#9ece6a"), // Green
			StatusMode:         HexToColor("#bb9af7"), // Magenta
			StatusMessage:      HexToColor("#9ece6a"), // Green
			StatusModified:     HexToColor("#f7768e"), // Red
			HeaderTitle:        HexToColor("#bb9af7"), // Magenta
		},
	}
}
