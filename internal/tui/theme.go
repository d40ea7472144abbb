package tui

import "github.com/charmbracelet/huh"

// currentTheme is nil until SetTheme picks a non-default theme.
var currentTheme *huh.Theme

// SetTheme sets the prompt theme by name; unknown or empty names select the relkit theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return relkitTheme()
	}
	return currentTheme
}
