package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/nudgekit/nudge/internal/cadence"
	"github.com/nudgekit/nudge/internal/cli/formatter"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect cadence profiles",
	}

	cmd.AddCommand(
		newScheduleShowCmd(),
		newScheduleRecommendCmd(app),
	)

	return cmd
}

func newScheduleShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [profile]",
		Short: "Show the reminder steps of a cadence profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := []domain.CadenceProfile{
				domain.CadenceStandard,
				domain.CadenceAggressive,
				domain.CadenceGentle,
			}
			if len(args) == 1 {
				p := domain.CadenceProfile(strings.ToLower(args[0]))
				if !domain.ValidCadenceProfiles[string(p)] || p == domain.CadenceCustom {
					return fmt.Errorf("unknown profile %q (standard, aggressive, gentle)", args[0])
				}
				profiles = []domain.CadenceProfile{p}
			}

			for _, p := range profiles {
				headers := []string{"KIND", "OFFSET"}
				var rows [][]string
				for _, step := range cadence.Catalog(p) {
					offset := fmt.Sprintf("day %d", step.DaysAfterCreation)
					if step.HoursAfterCreation != nil {
						offset += fmt.Sprintf(" +%dh", *step.HoursAfterCreation)
					}
					rows = append(rows, []string{
						formatter.KindBadge(step.Kind),
						formatter.StyleFg.Render(offset),
					})
				}
				fmt.Printf("%s\n", formatter.RenderBox(string(p), formatter.RenderTable(headers, rows)))
			}
			return nil
		},
	}
	return cmd
}

func newScheduleRecommendCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <project>",
		Short: "Show the recommended cadence for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := app.Projects.Resolve(context.Background(), args[0])
			if err != nil {
				return err
			}

			profile := cadence.RecommendProfile(&project.Priority, project.Budget)
			fmt.Printf("%s %s  %s %s\n",
				formatter.Dim("project"), formatter.Bold(project.DisplayID()),
				formatter.Dim("recommends"), formatter.ProfileBadge(profile))

			switch {
			case project.Priority == domain.PriorityCritical || project.Priority == domain.PriorityHigh:
				fmt.Println(formatter.Dim("reason: high priority"))
			case project.Budget != nil && *project.Budget > cadence.HighBudgetThreshold:
				fmt.Println(formatter.Dim("reason: budget above threshold"))
			case project.Priority == domain.PriorityLow:
				fmt.Println(formatter.Dim("reason: low priority"))
			default:
				fmt.Println(formatter.Dim("reason: default"))
			}
			return nil
		},
	}
	return cmd
}
