package formatter

import (
	"fmt"
	"strings"

	"github.com/nudgekit/nudge/internal/cadence"
	"github.com/nudgekit/nudge/internal/domain"
)

// FormatSessionList renders a styled session table inside a bordered box.
func FormatSessionList(sessions []*domain.OnboardingSession) string {
	headers := []string{"ID", "CLIENT", "STATUS", "CADENCE", "PROGRESS", "LAST ACTIVITY"}
	rows := make([][]string, 0, len(sessions))

	for _, s := range sessions {
		activity := Dim("never")
		if s.LastActivityAt != nil {
			activity = StyleFg.Render(HumanTimestamp(*s.LastActivityAt))
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.ClientName),
			SessionStatusPill(s.Status),
			ProfileBadge(s.CadenceProfile),
			RenderProgress(float64(s.CompletionPercentage)/100, 10),
			activity,
		})
	}

	return RenderBox("Onboarding Sessions", RenderTable(headers, rows))
}

// FormatSessionDetail renders a full session card.
func FormatSessionDetail(s *domain.OnboardingSession, p *domain.ClientProject) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(s.ClientName) + "  " + Dim("<"+s.ClientEmail+">") + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROJECT "), StyleFg.Render(p.DisplayID())+"  "+Bold(p.Name)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS  "), SessionStatusPill(s.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CADENCE "), ProfileBadge(s.CadenceProfile)))
	b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("PROGRESS"),
		RenderProgress(float64(s.CompletionPercentage)/100, 16),
		Dim(fmt.Sprintf("step %d of %d", s.CurrentStep, s.TotalSteps))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CREATED "), StyleFg.Render(HumanDate(s.CreatedAt))))
	if s.LastActivityAt != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ACTIVITY"), StyleFg.Render(HumanTimestamp(*s.LastActivityAt))))
	}
	if s.ExpiresAt != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("EXPIRES "), RelativeDate(*s.ExpiresAt)))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TOKEN   "), Dim(s.AccessToken)))

	return RenderBox("", b.String())
}

// SuppressionNote explains why reminders are currently held back.
func SuppressionNote(reason cadence.SuppressionReason) string {
	switch reason {
	case cadence.SuppressCompleted:
		return StyleDim.Render("✔ onboarding completed, no reminders")
	case cadence.SuppressExpired:
		return StyleRed.Render("✖ session expired, reminders stopped")
	case cadence.SuppressRecentActivity:
		return StyleYellow.Render("◌ client recently active, holding off")
	default:
		return StyleGreen.Render("● reminders active")
	}
}
