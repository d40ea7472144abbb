package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ValidThemes is the list of supported theme names.
var ValidThemes = []string{
	"relkit",
	"base",
	"base16",
	"catppuccin",
	"charm",
	"dracula",
}

// IsValidTheme returns true if the given theme name is valid.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme returns the huh.Theme for the given theme name, or nil.
func GetTheme(name string) *huh.Theme {
	switch name {
	case "relkit":
		return relkitTheme()
	case "base":
		return huh.ThemeBase()
	case "base16":
		return huh.ThemeBase16()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	default:
		return nil
	}
}

// relkitTheme is ThemeBase with the printer's cyan/green accents.
func relkitTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.Color("6")
	ok := lipgloss.Color("2")
	bad := lipgloss.Color("1")

	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ok)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(bad)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(bad)
	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
