package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/nudgekit/nudge/internal/cli/formatter"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/nudgekit/nudge/internal/service"
)

// nudgeHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func nudgeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runSessionWizard collects the fields of a new onboarding session through
// an interactive form. Fields already set on in are kept and skipped.
func runSessionWizard(ctx context.Context, app *App, in *service.CreateSessionInput) error {
	if in.ProjectRef == "" {
		projects, err := app.Projects.List(ctx, false)
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			return fmt.Errorf("no active projects; create one with 'nudge project add'")
		}

		options := make([]huh.Option[string], 0, len(projects))
		for _, p := range projects {
			options = append(options, huh.NewOption(fmt.Sprintf("%s — %s", p.DisplayID(), p.Name), p.ID))
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Which Project?").
					Options(options...).
					Value(&in.ProjectRef),
			),
		).WithTheme(nudgeHuhTheme()).WithShowHelp(false)
		if err := form.Run(); err != nil {
			return err
		}
	}

	var steps string
	group := huh.NewGroup(
		huh.NewInput().
			Title("Client Name").
			Placeholder("Dana Reyes").
			Value(&in.ClientName),
		huh.NewInput().
			Title("Client Email").
			Placeholder("dana@example.com").
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("email is required")
				}
				return nil
			}).
			Value(&in.ClientEmail),
		huh.NewInput().
			Title("Onboarding Steps").
			Description("How many questionnaire steps the client will complete").
			Placeholder("8").
			Validate(func(s string) error {
				if s == "" {
					return nil
				}
				n, err := strconv.Atoi(s)
				if err != nil || n <= 0 {
					return fmt.Errorf("enter a positive number")
				}
				return nil
			}).
			Value(&steps),
		huh.NewSelect[domain.CadenceProfile]().
			Title("Reminder Cadence").
			Options(
				huh.NewOption("Recommended for this project", domain.CadenceProfile("")),
				huh.NewOption("Standard (day 2, 5, 7)", domain.CadenceStandard),
				huh.NewOption("Aggressive (day 1, 3, 5)", domain.CadenceAggressive),
				huh.NewOption("Gentle (day 3, 7, 10)", domain.CadenceGentle),
			).
			Value(&in.Profile),
	)

	form := huh.NewForm(group).WithTheme(nudgeHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return err
	}

	if steps != "" {
		n, err := strconv.Atoi(steps)
		if err != nil {
			return fmt.Errorf("invalid step count %q: %w", steps, err)
		}
		in.TotalSteps = n
	}
	return nil
}
