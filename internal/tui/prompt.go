package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the operator cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Choice letters offered by the bump prompt.
const (
	ChoiceIncrement = "i"
	ChoiceSpecify   = "s"
)

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	// SelectOperation asks for ChoiceIncrement or ChoiceSpecify.
	SelectOperation(project, current string) (string, error)
	// InputVersion asks for an explicit version; validate runs on every edit.
	InputVersion(current string, validate func(string) error) (string, error)
}

// HuhPrompter implements Prompter with huh forms.
type HuhPrompter struct{}

// NewPrompter returns the huh-backed prompter.
func NewPrompter() Prompter {
	return &HuhPrompter{}
}

func (HuhPrompter) SelectOperation(project, current string) (string, error) {
	var choice string
	field := huh.NewSelect[string]().
		Title("Action for " + project + " (" + current + ")").
		Options(
			huh.NewOption("[i] Increment patch", ChoiceIncrement),
			huh.NewOption("[s] Specify version", ChoiceSpecify),
		).
		Value(&choice)

	if err := run(huh.NewForm(huh.NewGroup(field))); err != nil {
		return "", err
	}
	return choice, nil
}

func (HuhPrompter) InputVersion(current string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().
		Title("Enter new semver").
		Description("Current version: " + current).
		Placeholder(current).
		Validate(validate).
		Value(&value)

	if err := run(huh.NewForm(huh.NewGroup(field))); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func run(form *huh.Form) error {
	err := form.WithTheme(currentThemeOrDefault()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}
