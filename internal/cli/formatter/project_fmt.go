package formatter

import (
	"fmt"
	"strings"

	"github.com/nudgekit/nudge/internal/domain"
)

// FormatProjectList renders a styled project table inside a bordered box.
func FormatProjectList(projects []*domain.ClientProject) string {
	headers := []string{"ID", "NAME", "PRIORITY", "BUDGET", "STATUS"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		budget := Dim("--")
		if p.Budget != nil {
			budget = StyleFg.Render(fmt.Sprintf("$%.0f", *p.Budget))
		}
		rows = append(rows, []string{
			StyleFg.Render(p.DisplayID()),
			Bold(p.Name),
			PriorityIndicator(p.Priority),
			budget,
			ProjectStatusPill(p.Status),
		})
	}

	return RenderBox("Client Projects", RenderTable(headers, rows))
}

// FormatProjectDetail renders a single project card with its sessions.
func FormatProjectDetail(p *domain.ClientProject, sessions []*domain.OnboardingSession) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID      "), StyleFg.Render(p.DisplayID())))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID    "), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PRIORITY"), PriorityIndicator(p.Priority)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS  "), ProjectStatusPill(p.Status)))
	if p.Budget != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("BUDGET  "), StyleFg.Render(fmt.Sprintf("$%.0f", *p.Budget))))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CREATED "), StyleFg.Render(HumanDate(p.CreatedAt))))

	if len(sessions) > 0 {
		b.WriteString("\n" + Header("Sessions") + "\n")
		for _, s := range sessions {
			b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
				TruncID(s.ID),
				StyleFg.Render(s.ClientName),
				SessionStatusPill(s.Status),
				RenderProgress(float64(s.CompletionPercentage)/100, 12),
			))
		}
	}

	return RenderBox("", b.String())
}
