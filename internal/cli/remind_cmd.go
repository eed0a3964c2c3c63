package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nudgekit/nudge/internal/cli/formatter"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/spf13/cobra"
)

func newRemindCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run and preview reminder passes",
	}

	cmd.AddCommand(
		newRemindTickCmd(app),
		newRemindTimelineCmd(app),
		newRemindPreviewCmd(app),
		newRemindHistoryCmd(app),
	)

	return cmd
}

func newRemindTickCmd(app *App) *cobra.Command {
	var dryRun bool
	var at string

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run one reminder pass over all open sessions",
		Long: `Run one reminder pass: for every pending or in-progress session,
send the earliest due reminder that has not gone out yet. Suppression
rules (completed, expired, recent activity) are applied per session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at time %q: %w", at, err)
				}
				now = parsed.UTC()
			}

			results, err := app.Reminders.Tick(context.Background(), now, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatTickResults(results, dryRun))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be sent without sending or recording")
	cmd.Flags().StringVar(&at, "at", "", "Evaluate as of this RFC3339 time instead of now")

	return cmd
}

func newRemindTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline <session>",
		Short: "Show a session's reminder timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			preview, err := app.Reminders.Preview(ctx, id, now)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatTimeline(preview, now))
			return nil
		},
	}
	return cmd
}

func newRemindHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <session>",
		Short: "Show the reminders already sent for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}

			logs, err := app.Reminders.History(ctx, id)
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				fmt.Println("No reminders sent yet.")
				return nil
			}

			headers := []string{"KIND", "SUBJECT", "SENT"}
			rows := make([][]string, 0, len(logs))
			for _, l := range logs {
				rows = append(rows, []string{
					formatter.KindBadge(l.Kind),
					formatter.StyleFg.Render(l.Subject),
					formatter.Dim(l.SentAt.Format("Jan 2 15:04")),
				})
			}
			fmt.Printf("%s\n", formatter.RenderBox("Sent Reminders", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
	return cmd
}

func newRemindPreviewCmd(app *App) *cobra.Command {
	var kind, subject, message string

	cmd := &cobra.Command{
		Use:   "preview <session>",
		Short: "Render the email a session would receive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}

			k := domain.ReminderKind(strings.ToLower(kind))
			if !domain.ValidReminderKinds[string(k)] {
				return fmt.Errorf("unknown reminder kind %q", kind)
			}

			session, err := app.Sessions.GetByID(ctx, id)
			if err != nil {
				return err
			}

			msg, err := app.Reminders.RenderPreview(ctx, id, k, subject, message, time.Now().UTC())
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatEmailPreview(k, session.ClientEmail, msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "gentle", "Reminder kind (gentle, encouragement, final, custom)")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject for a custom reminder")
	cmd.Flags().StringVar(&message, "message", "", "Body for a custom reminder")

	return cmd
}
