// Package picker lets the user choose one registered project.
package picker

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-autoclaude/internal/models"
	"github.com/jakoblorz/go-autoclaude/internal/tui"
)

// ErrNoProjects is returned when there is nothing to pick from.
var ErrNoProjects = errors.New("no projects registered")

// Flow runs a single-select form over the project list.
type Flow struct {
	projects   []*models.Project
	current    string
	theme      *huh.Theme
	accessible bool
	input      io.Reader
	output     io.Writer
}

// Option configures a Flow.
type Option func(*Flow)

// WithCurrent preselects the project with the given id.
func WithCurrent(id string) Option {
	return func(f *Flow) {
		f.current = id
	}
}

// WithAccessible runs the form as plain numbered prompts on in/out instead
// of a full-screen program. Used when stdin is not a terminal.
func WithAccessible(in io.Reader, out io.Writer) Option {
	return func(f *Flow) {
		f.accessible = true
		f.input = in
		f.output = out
	}
}

// NewFlow constructs a Flow with the app's huh theme.
func NewFlow(projects []*models.Project, options ...Option) *Flow {
	f := &Flow{
		projects: projects,
		theme:    tui.NewHuhTheme(),
	}

	for _, option := range options {
		option(f)
	}

	return f
}

// Run shows the form and returns the chosen id; "" on user abort.
func (f *Flow) Run() (string, error) {
	if len(f.projects) == 0 {
		return "", ErrNoProjects
	}

	selected := f.current
	opts := make([]huh.Option[string], 0, len(f.projects))
	for _, p := range f.projects {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s", p.Name, tui.SubtleStyle.Render(p.Path)), p.ID))
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "select")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&selected),
		).
			Title("Project Selection").
			Description("Choose the project to work on."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithKeyMap(keyMap)

	if f.accessible {
		form = form.WithAccessible(true).WithInput(f.input).WithOutput(f.output)
	} else {
		form = form.WithProgramOptions(tea.WithAltScreen())
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}

	return selected, nil
}
