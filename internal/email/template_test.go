package email

import (
	"strings"
	"testing"
	"time"

	"github.com/nudgekit/nudge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:3000"

var renderedAt = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func gentleInput() BuildInput {
	return BuildInput{
		Kind:                 domain.ReminderGentle,
		RecipientName:        "Jane",
		ProjectName:          "Atlas Rebrand",
		AccessToken:          "tok-123",
		CompletionPercentage: 40,
		CurrentStep:          3,
		TotalSteps:           8,
	}
}

func TestBuild_Gentle(t *testing.T) {
	msg, err := Build(gentleInput(), baseURL, renderedAt)
	require.NoError(t, err)

	assert.Contains(t, msg.Subject, "Atlas Rebrand")
	assert.Contains(t, msg.HTMLBody, "Jane")
	assert.Contains(t, msg.HTMLBody, "40%")
	assert.Contains(t, msg.HTMLBody, "step 3 of 8")
	assert.Contains(t, msg.HTMLBody, "http://localhost:3000/onboarding/tok-123")
	assert.NotEmpty(t, msg.TextBody)
	assert.Contains(t, msg.TextBody, "http://localhost:3000/onboarding/tok-123")
}

func TestBuild_Signoff(t *testing.T) {
	in := gentleInput()
	in.SenderName = "The Onboarding Team"

	msg, err := Build(in, baseURL, renderedAt)
	require.NoError(t, err)
	assert.Contains(t, msg.TextBody, "Thanks,\nThe Onboarding Team")

	// No sender configured means no dangling sign-off.
	msg, err = Build(gentleInput(), baseURL, renderedAt)
	require.NoError(t, err)
	assert.NotContains(t, msg.TextBody, "Thanks,")
}

func TestBuild_ExpirationNote(t *testing.T) {
	in := gentleInput()
	expires := renderedAt.Add(3 * 24 * time.Hour)
	in.ExpiresAt = &expires

	msg, err := Build(in, baseURL, renderedAt)
	require.NoError(t, err)
	assert.Contains(t, msg.TextBody, "expires in 3 days")

	today := renderedAt.Add(-2 * time.Hour)
	in.ExpiresAt = &today
	msg, err = Build(in, baseURL, renderedAt)
	require.NoError(t, err)
	assert.Contains(t, msg.TextBody, "expires today")
}

func TestBuild_FinalMinutesEstimate(t *testing.T) {
	in := gentleInput()
	in.Kind = domain.ReminderFinal
	in.CompletionPercentage = 50

	msg, err := Build(in, baseURL, renderedAt)
	require.NoError(t, err)
	assert.Contains(t, msg.TextBody, "about 10 minutes")
}

func TestBuild_FinalMinutesNeverNegative(t *testing.T) {
	in := gentleInput()
	in.Kind = domain.ReminderFinal
	in.CompletionPercentage = 120

	msg, err := Build(in, baseURL, renderedAt)
	require.NoError(t, err)
	assert.Contains(t, msg.TextBody, "about 0 minutes")
	assert.NotContains(t, msg.TextBody, "about -")
}

func TestBuild_CustomValidation(t *testing.T) {
	in := gentleInput()
	in.Kind = domain.ReminderCustom

	_, err := Build(in, baseURL, renderedAt)
	assert.ErrorIs(t, err, ErrMissingCustomContent)

	in.CustomSubject = "Checking in"
	_, err = Build(in, baseURL, renderedAt)
	assert.ErrorIs(t, err, ErrMissingCustomContent, "subject alone is not enough")

	in.CustomMessage = "We still need your brand assets before Friday."
	msg, err := Build(in, baseURL, renderedAt)
	require.NoError(t, err)
	assert.Equal(t, "Checking in", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "We still need your brand assets before Friday.")
	assert.Contains(t, msg.TextBody, "We still need your brand assets before Friday.")
}

func TestBuild_EscapesUserText(t *testing.T) {
	in := gentleInput()
	in.ProjectName = `Atlas <Rebrand> & Co`

	msg, err := Build(in, baseURL, renderedAt)
	require.NoError(t, err)
	assert.NotContains(t, msg.HTMLBody, "<Rebrand>")
	assert.Contains(t, msg.HTMLBody, "&lt;Rebrand&gt;")
	// Text body keeps the literal name.
	assert.Contains(t, msg.TextBody, "Atlas <Rebrand> & Co")
}

func TestBuild_UnknownKind(t *testing.T) {
	in := gentleInput()
	in.Kind = domain.ReminderInitial
	_, err := Build(in, baseURL, renderedAt)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestOnboardingLink_TrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "https://app.example.com/onboarding/t1",
		OnboardingLink("https://app.example.com/", "t1"))
}

func TestBuild_BothBodiesAlwaysPopulated(t *testing.T) {
	for _, kind := range []domain.ReminderKind{domain.ReminderGentle, domain.ReminderEncouragement, domain.ReminderFinal} {
		in := gentleInput()
		in.Kind = kind
		msg, err := Build(in, baseURL, renderedAt)
		require.NoError(t, err)
		assert.True(t, strings.Contains(msg.HTMLBody, "<div"), "kind %s html", kind)
		assert.NotEmpty(t, msg.TextBody, "kind %s text", kind)
		assert.NotEmpty(t, msg.Subject, "kind %s subject", kind)
	}
}
