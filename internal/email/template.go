// Package email renders reminder messages. Rendering is pure string
// building over the caller's inputs; nothing here sends mail.
package email

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/nudgekit/nudge/internal/cadence"
	"github.com/nudgekit/nudge/internal/domain"
)

// ErrMissingCustomContent is returned when a custom reminder is built
// without both a subject and a message.
var ErrMissingCustomContent = errors.New("custom reminder requires both a subject and a message")

// ErrUnknownKind is returned for reminder kinds with no template.
var ErrUnknownKind = errors.New("no template for reminder kind")

// BuildInput carries the session display data a template interpolates.
type BuildInput struct {
	Kind          domain.ReminderKind
	RecipientName string
	ProjectName   string
	AccessToken   string

	CompletionPercentage int
	CurrentStep          int
	TotalSteps           int
	ExpiresAt            *time.Time

	// SenderName signs the message. Empty means no sign-off.
	SenderName string

	// Required for the custom kind, ignored otherwise.
	CustomSubject string
	CustomMessage string
}

// Build renders the subject, HTML body, and text body for a reminder.
// Both bodies are always populated on success. The only failure paths are
// an unknown kind and a custom reminder missing its content.
func Build(in BuildInput, baseURL string, now time.Time) (domain.EmailMessage, error) {
	link := OnboardingLink(baseURL, in.AccessToken)

	switch in.Kind {
	case domain.ReminderGentle:
		return buildGentle(in, link, now), nil
	case domain.ReminderEncouragement:
		return buildEncouragement(in, link, now), nil
	case domain.ReminderFinal:
		return buildFinal(in, link, now), nil
	case domain.ReminderCustom:
		if in.CustomSubject == "" || in.CustomMessage == "" {
			return domain.EmailMessage{}, ErrMissingCustomContent
		}
		return buildCustom(in, link), nil
	default:
		return domain.EmailMessage{}, fmt.Errorf("%w: %s", ErrUnknownKind, in.Kind)
	}
}

// OnboardingLink builds the public questionnaire URL for a session.
func OnboardingLink(baseURL, accessToken string) string {
	return fmt.Sprintf("%s/onboarding/%s", strings.TrimRight(baseURL, "/"), accessToken)
}

func buildGentle(in BuildInput, link string, now time.Time) domain.EmailMessage {
	subject := fmt.Sprintf("A quick nudge on your %s onboarding", in.ProjectName)

	progress := fmt.Sprintf("You're %d%% of the way through", in.CompletionPercentage)
	if in.TotalSteps > 0 {
		progress += fmt.Sprintf(" (step %d of %d)", in.CurrentStep, in.TotalSteps)
	}
	progress += "."

	paragraphs := []string{
		fmt.Sprintf("Hi %s,", in.RecipientName),
		fmt.Sprintf("Just a quick reminder that your onboarding questionnaire for %s is waiting for you.", in.ProjectName),
		progress,
	}
	paragraphs = appendExpirationNote(paragraphs, in.ExpiresAt, now)
	paragraphs = appendSignoff(paragraphs, in.SenderName)

	return assemble(subject, paragraphs, "Pick up where you left off", link)
}

func buildEncouragement(in BuildInput, link string, now time.Time) domain.EmailMessage {
	subject := fmt.Sprintf("Keep going: your %s onboarding is waiting", in.ProjectName)

	paragraphs := []string{
		fmt.Sprintf("Hi %s,", in.RecipientName),
		fmt.Sprintf("We noticed you haven't finished the onboarding questionnaire for %s yet.", in.ProjectName),
		"Your answers help us hit the ground running, and every question you complete gets us closer to kickoff.",
	}
	paragraphs = appendExpirationNote(paragraphs, in.ExpiresAt, now)
	paragraphs = appendSignoff(paragraphs, in.SenderName)

	return assemble(subject, paragraphs, "Continue your onboarding", link)
}

func buildFinal(in BuildInput, link string, now time.Time) domain.EmailMessage {
	subject := fmt.Sprintf("Last reminder: your %s onboarding window is closing", in.ProjectName)

	paragraphs := []string{
		fmt.Sprintf("Hi %s,", in.RecipientName),
		fmt.Sprintf("This is the last reminder about your onboarding questionnaire for %s.", in.ProjectName),
		fmt.Sprintf("Based on your progress so far, finishing should take about %d minutes.", minutesRemaining(in.CompletionPercentage)),
	}
	paragraphs = appendExpirationNote(paragraphs, in.ExpiresAt, now)
	paragraphs = appendSignoff(paragraphs, in.SenderName)

	return assemble(subject, paragraphs, "Finish now", link)
}

func buildCustom(in BuildInput, link string) domain.EmailMessage {
	paragraphs := []string{
		fmt.Sprintf("Hi %s,", in.RecipientName),
		in.CustomMessage,
	}
	paragraphs = appendSignoff(paragraphs, in.SenderName)
	return assemble(in.CustomSubject, paragraphs, "Open your onboarding", link)
}

// minutesRemaining estimates time to finish from completion percentage.
// Clamped at zero so over-complete sessions never render a negative
// duration.
func minutesRemaining(completionPct int) int {
	minutes := 20 - completionPct/5
	if minutes < 0 {
		minutes = 0
	}
	return minutes
}

func appendSignoff(paragraphs []string, sender string) []string {
	if sender == "" {
		return paragraphs
	}
	return append(paragraphs, fmt.Sprintf("Thanks,\n%s", sender))
}

func appendExpirationNote(paragraphs []string, expiresAt *time.Time, now time.Time) []string {
	days := cadence.DaysUntilExpiration(expiresAt, now)
	if days == nil {
		return paragraphs
	}
	switch *days {
	case 0:
		return append(paragraphs, "Your onboarding link expires today.")
	case 1:
		return append(paragraphs, "Your onboarding link expires in 1 day.")
	default:
		return append(paragraphs, fmt.Sprintf("Your onboarding link expires in %d days.", *days))
	}
}

// assemble wraps the paragraphs and call-to-action in the shared visual
// frame and produces the matching plain-text rendering.
func assemble(subject string, paragraphs []string, cta, link string) domain.EmailMessage {
	var htmlBody strings.Builder
	htmlBody.WriteString(`<div style="font-family: Helvetica, Arial, sans-serif; max-width: 560px; margin: 0 auto; padding: 24px; color: #1f2933;">`)
	for _, p := range paragraphs {
		fmt.Fprintf(&htmlBody, `<p style="line-height: 1.5; margin: 0 0 16px;">%s</p>`, html.EscapeString(p))
	}
	fmt.Fprintf(&htmlBody,
		`<p style="margin: 24px 0;"><a href="%s" style="background: #2563eb; color: #ffffff; padding: 12px 20px; border-radius: 6px; text-decoration: none;">%s</a></p>`,
		link, html.EscapeString(cta))
	fmt.Fprintf(&htmlBody,
		`<p style="font-size: 12px; color: #7b8794;">If the button doesn't work, copy this link into your browser: %s</p>`,
		link)
	htmlBody.WriteString(`</div>`)

	var textBody strings.Builder
	for _, p := range paragraphs {
		textBody.WriteString(p)
		textBody.WriteString("\n\n")
	}
	fmt.Fprintf(&textBody, "%s: %s\n", cta, link)

	return domain.EmailMessage{
		Subject:  subject,
		HTMLBody: htmlBody.String(),
		TextBody: textBody.String(),
	}
}
