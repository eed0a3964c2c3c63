package cli

import (
	"strings"

	"github.com/nudgekit/nudge/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Sessions  service.SessionService
	Reminders service.ReminderService

	// IsInteractive reports whether stdin is a terminal. Wizard forms
	// are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "nudge" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "nudge",
		Short: "Client onboarding reminder scheduler",
	}

	// Accept underscore spellings of flags, e.g. --dry_run.
	root.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newProjectCmd(app),
		newSessionCmd(app),
		newScheduleCmd(app),
		newRemindCmd(app),
		newWatchCmd(app),
	)

	return root
}
