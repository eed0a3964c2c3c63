package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/nudgekit/nudge/internal/cadence"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/nudgekit/nudge/internal/service"
)

// FormatTimeline renders a session's reminder timeline with ledger and
// due-state markers.
func FormatTimeline(preview *service.TimelinePreview, now time.Time) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(preview.Session.ClientName))
	b.WriteString("  " + Dim(preview.Project.Name) + "\n")
	b.WriteString(SuppressionNote(preview.Suppressed) + "\n\n")

	for _, e := range preview.Entries {
		marker := StyleDim.Render("○")
		note := RelativeDateFrom(e.ScheduledAt, now)
		switch {
		case e.Sent:
			marker = StyleGreen.Render("✔")
			note = "sent"
		case e.Due:
			marker = StyleYellow.Render("●")
			note += ", due"
		}
		b.WriteString(fmt.Sprintf("%s %s  %s  %s\n",
			marker,
			KindBadge(e.Kind),
			StyleFg.Render(e.ScheduledAt.Format("Jan 2 15:04")),
			Dim(note),
		))
	}

	if preview.Next != nil {
		b.WriteString("\n" + StyleHeader.Render("NEXT") + " " + KindBadge(preview.Next.Kind))
		b.WriteString(Dim(" scheduled " + preview.Next.ScheduledAt.Format("Jan 2 15:04")))
		b.WriteString("\n")
	} else if preview.Suppressed == cadence.SuppressNone {
		b.WriteString("\n" + Dim("nothing due right now") + "\n")
	}

	return RenderBox("Reminder Timeline", b.String())
}

// FormatTickResults renders the outcome table of one scheduler pass.
func FormatTickResults(results []service.TickResult, dryRun bool) string {
	title := "Reminder Pass"
	if dryRun {
		title = "Reminder Pass (dry run)"
	}
	if len(results) == 0 {
		return RenderBox(title, Dim("no remindable sessions"))
	}

	headers := []string{"SESSION", "CLIENT", "KIND", "OUTCOME"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		kind := Dim("--")
		if r.Kind != "" {
			kind = KindBadge(r.Kind)
		}
		rows = append(rows, []string{
			TruncID(r.SessionID),
			StyleFg.Render(r.ClientEmail),
			kind,
			outcomeBadge(r),
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

func outcomeBadge(r service.TickResult) string {
	switch r.Outcome {
	case service.OutcomeSent:
		return StyleGreen.Render("sent")
	case service.OutcomeDryRun:
		return StyleBlue.Render("would send")
	case service.OutcomeSuppressed:
		return StyleYellow.Render("suppressed " + Dim(string(r.Suppressed)))
	case service.OutcomeNoneDue:
		return Dim("none due")
	case service.OutcomeLostRace:
		return Dim("already sent")
	case service.OutcomeError:
		msg := "error"
		if r.Err != nil {
			msg = "error: " + r.Err.Error()
		}
		return StyleRed.Render(msg)
	default:
		return Dim(string(r.Outcome))
	}
}

// FormatEmailPreview renders a composed email as it would be sent, using
// the plain-text body.
func FormatEmailPreview(kind domain.ReminderKind, to string, msg *domain.EmailMessage) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TO     "), StyleFg.Render(to)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("KIND   "), KindBadge(kind)))
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("SUBJECT"), Bold(msg.Subject)))
	b.WriteString(StyleFg.Render(msg.TextBody))
	return RenderBox("Email Preview", b.String())
}
