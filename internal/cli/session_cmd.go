package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/nudgekit/nudge/internal/cli/formatter"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/nudgekit/nudge/internal/service"
	"github.com/spf13/cobra"
)

// resolveSessionID expands a session ID prefix to the full UUID.
func resolveSessionID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("session ID is required")
	}

	if s, err := app.Sessions.GetByID(ctx, input); err == nil {
		return s.ID, nil
	}

	sessions, err := app.Sessions.ListRemindable(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, s := range sessions {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("session not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage onboarding sessions",
	}

	cmd.AddCommand(
		newSessionCreateCmd(app),
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionTouchCmd(app),
		newSessionProgressCmd(app),
		newSessionCompleteCmd(app),
		newSessionAbandonCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionCreateCmd(app *App) *cobra.Command {
	var projectRef, clientName, clientEmail, profile string
	var totalSteps, expiresDays int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a new onboarding session",
		Long: `Start a new onboarding session for a client.

With no flags on an interactive terminal this opens a form. Otherwise
--project, --name, and --email are required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			in := service.CreateSessionInput{
				ProjectRef:  projectRef,
				ClientName:  clientName,
				ClientEmail: clientEmail,
				TotalSteps:  totalSteps,
				Profile:     domain.CadenceProfile(profile),
			}
			if cmd.Flags().Changed("expires") {
				in.ExpiresInDays = &expiresDays
			}

			missingFlags := projectRef == "" || clientName == "" || clientEmail == ""
			if missingFlags {
				if !app.interactive() {
					return fmt.Errorf("--project, --name, and --email are required")
				}
				if err := runSessionWizard(ctx, app, &in); err != nil {
					return err
				}
			}
			if in.TotalSteps == 0 {
				in.TotalSteps = 8
			}

			session, err := app.Sessions.Create(ctx, in)
			if err != nil {
				return err
			}

			fmt.Printf("Created session for %s\n", session.ClientName)
			fmt.Printf("  ID     %s\n", session.ID)
			fmt.Printf("  Token  %s\n", session.AccessToken)
			fmt.Printf("  Cadence %s\n", session.CadenceProfile)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&clientName, "name", "", "Client contact name")
	cmd.Flags().StringVar(&clientEmail, "email", "", "Client contact email")
	cmd.Flags().IntVar(&totalSteps, "steps", 0, "Number of onboarding steps (default 8)")
	cmd.Flags().IntVar(&expiresDays, "expires", 0, "Expire the session after N days")
	cmd.Flags().StringVar(&profile, "cadence", "", "Cadence profile (standard, aggressive, gentle); defaults to the project recommendation")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List onboarding sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var sessions []*domain.OnboardingSession
			var err error
			if projectRef != "" {
				sessions, err = app.Sessions.ListByProject(ctx, projectRef)
			} else {
				sessions, err = app.Sessions.ListRemindable(ctx)
			}
			if err != nil {
				return err
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatSessionList(sessions))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Limit to one project (short ID or UUID); shows all statuses")
	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session>",
		Short: "Show one session in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			session, err := app.Sessions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			project, err := app.Projects.GetByID(ctx, session.ProjectID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatSessionDetail(session, project))
			return nil
		},
	}
	return cmd
}

func newSessionTouchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "touch <session>",
		Short: "Record client activity on a session",
		Long:  "Record client activity, which holds reminders back for the next hour.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.TouchActivity(ctx, id); err != nil {
				return err
			}
			fmt.Println("Recorded activity.")
			return nil
		},
	}
	return cmd
}

func newSessionProgressCmd(app *App) *cobra.Command {
	var pct, step, total int

	cmd := &cobra.Command{
		Use:   "progress <session>",
		Short: "Update a session's questionnaire progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}

			session, err := app.Sessions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("total") {
				total = session.TotalSteps
			}

			if err := app.Sessions.UpdateProgress(ctx, id, pct, step, total); err != nil {
				return err
			}
			if pct >= 100 {
				fmt.Println("Progress updated. Session completed, reminders stopped.")
			} else {
				fmt.Printf("Progress updated to %d%% (step %d of %d).\n", pct, step, total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&pct, "pct", 0, "Completion percentage (0-100)")
	cmd.Flags().IntVar(&step, "step", 0, "Current step number")
	cmd.Flags().IntVar(&total, "total", 0, "Total steps (defaults to the stored value)")
	_ = cmd.MarkFlagRequired("pct")

	return cmd
}

func newSessionCompleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <session>",
		Short: "Mark a session completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Complete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Session completed. Reminders stopped.")
			return nil
		},
	}
	return cmd
}

func newSessionAbandonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abandon <session>",
		Short: "Mark a session abandoned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Abandon(ctx, id); err != nil {
				return err
			}
			fmt.Println("Session abandoned. Reminders stopped.")
			return nil
		},
	}
	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <session>",
		Short: "Delete a session and its reminder history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to delete session %s without --force", id[:8])
			}
			if err := app.Sessions.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Session deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation guard")
	return cmd
}
