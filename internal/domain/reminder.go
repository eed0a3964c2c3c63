package domain

import "time"

// ReminderStep is one catalog entry: which reminder fires how long after
// session creation. Within a profile the steps are authored in
// non-decreasing offset order; the engine does not re-sort them.
type ReminderStep struct {
	Kind               ReminderKind
	DaysAfterCreation  int
	HoursAfterCreation *int
}

// ComputedReminder is a catalog step resolved against a concrete session
// creation time. Ephemeral; never persisted.
type ComputedReminder struct {
	Kind        ReminderKind
	ScheduledAt time.Time
}

// ReminderLog is one row of the durable sent-reminder ledger. The
// (SessionID, Kind) pair is unique, which is what makes delivery
// idempotent under concurrent scheduler ticks.
type ReminderLog struct {
	ID        string
	SessionID string
	Kind      ReminderKind
	Subject   string
	SentAt    time.Time
}

// EmailMessage is a rendered reminder, produced fresh on each call.
// Both bodies are always populated.
type EmailMessage struct {
	Subject  string
	HTMLBody string
	TextBody string
}
