package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		Background         string `toml:"background"`
		TreeNormalText     string `toml:"tree_normal_text"`
		TreeSelectedItem   string `toml:"tree_selected_item"`
		TreeSelectedBg     string `toml:"tree_selected_bg"`
		TreeLeafArrow      string `toml:"tree_leaf_arrow"`
		TreeExpandedArrow  string `toml:"tree_expanded_arrow"`
		TreeCollapsedArrow string `toml:"tree_collapsed_arrow"`
		DragActive         string `toml:"drag_active"`
		DropIndicator      string `toml:"drop_indicator"`
		SearchLabel        string `toml:"search_label"`
		SearchText         string `toml:"search_text"`
		SearchResultCount  string `toml:"search_result_count"`
		StatusMode         string `toml:"status_mode"`
		StatusMessage      string `toml:"status_message"`
		StatusModified     string `toml:"status_modified"`
		HeaderTitle        string `toml:"header_title"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "blocktree", "themes"))
		paths = append(paths, filepath.Join(home, ".local", "share", "blocktree", "themes"))
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo
// Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	t := TokyoNight()

	apply := func(value string, dest *tcell.Color) {
		if value != "" {
			*dest = ParseColorString(value)
		}
	}

	c := &t.Colors
	apply(config.Colors.Background, &c.Background)
	apply(config.Colors.TreeNormalText, &c.TreeNormalText)
	apply(config.Colors.TreeSelectedItem, &c.TreeSelectedItem)
	apply(config.Colors.TreeSelectedBg, &c.TreeSelectedBg)
	apply(config.Colors.TreeLeafArrow, &c.TreeLeafArrow)
	apply(config.Colors.TreeExpandedArrow, &c.TreeExpandedArrow)
	apply(config.Colors.TreeCollapsedArrow, &c.TreeCollapsedArrow)
	apply(config.Colors.DragActive, &c.DragActive)
	apply(config.Colors.DropIndicator, &c.DropIndicator)
	apply(config.Colors.SearchLabel, &c.SearchLabel)
	apply(config.Colors.SearchText, &c.SearchText)
	apply(config.Colors.SearchResultCount, &c.SearchResultCount)
	apply(config.Colors.StatusMode, &c.StatusMode)
	apply(config.Colors.StatusMessage, &c.StatusMessage)
	apply(config.Colors.StatusModified, &c.StatusModified)
	apply(config.Colors.HeaderTitle, &c.HeaderTitle)

	if config.Name != "" {
		t.Name = config.Name
	}

	return t
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	if themeName == "default" {
		return Default()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
