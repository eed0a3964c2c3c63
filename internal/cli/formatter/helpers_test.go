package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 8, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "Just now", HumanTimestamp(now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour)))
}

func TestTruncID(t *testing.T) {
	got := TruncID("0123456789abcdef")
	assert.Contains(t, got, "01234567")
	assert.NotContains(t, got, "89abcdef")
}

func TestRenderProgressClamps(t *testing.T) {
	assert.Contains(t, RenderProgress(1.5, 8), "100%")
	assert.Contains(t, RenderProgress(-0.5, 8), "0%")
	assert.NotEmpty(t, RenderProgress(0.5, 1))
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{{"a1", "Atlas"}, {"b2", "Harbor Site"}},
	)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Harbor Site")
	assert.Contains(t, out, "─")
}
