package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nudgekit/nudge/internal/cli/formatter"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage client projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectPauseCmd(app),
		newProjectResumeCmd(app),
		newProjectArchiveCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, shortID, priority string
	var budget float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new client project",
		RunE: func(cmd *cobra.Command, args []string) error {
			prio := domain.ProjectPriority(strings.ToLower(priority))
			if !domain.ValidProjectPriorities[string(prio)] {
				return fmt.Errorf("invalid priority %q", priority)
			}

			now := time.Now().UTC()
			p := &domain.ClientProject{
				ID:        uuid.New().String(),
				ShortID:   strings.ToUpper(shortID),
				Name:      name,
				Priority:  prio,
				Status:    domain.ProjectActive,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if cmd.Flags().Changed("budget") {
				p.Budget = &budget
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. ACME01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (low, medium, high, critical)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Project budget in dollars")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List client projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")
	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <project>",
		Short: "Show a project and its onboarding sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.ListByProject(ctx, project.ID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatProjectDetail(project, sessions))
			return nil
		},
	}
	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, priority string
	var budget float64

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update a project's name, priority, or budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				project.Name = name
			}
			if cmd.Flags().Changed("priority") {
				prio := domain.ProjectPriority(strings.ToLower(priority))
				if !domain.ValidProjectPriorities[string(prio)] {
					return fmt.Errorf("invalid priority %q", priority)
				}
				project.Priority = prio
			}
			if cmd.Flags().Changed("budget") {
				project.Budget = &budget
			}

			if err := app.Projects.Update(ctx, project); err != nil {
				return err
			}
			fmt.Printf("Updated project %s\n", project.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().Float64Var(&budget, "budget", 0, "New budget in dollars")
	return cmd
}

func newProjectPauseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pause <project>",
		Short: "Pause a project, suspending reminders for all of its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Pause(ctx, project.ID); err != nil {
				return err
			}
			fmt.Printf("Paused project %s\n", project.DisplayID())
			return nil
		},
	}
	return cmd
}

func newProjectResumeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume <project>",
		Short: "Resume a paused project so reminders pick back up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Resume(ctx, project.ID); err != nil {
				return err
			}
			fmt.Printf("Resumed project %s\n", project.DisplayID())
			return nil
		},
	}
	return cmd
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <project>",
		Short: "Archive a project so no new sessions can be created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Archive(ctx, project.ID); err != nil {
				return err
			}
			fmt.Printf("Archived project %s\n", project.DisplayID())
			return nil
		},
	}
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project and all of its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to delete %s without --force", project.DisplayID())
			}
			if err := app.Projects.Delete(ctx, project.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted project %s\n", project.DisplayID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation guard")
	return cmd
}
