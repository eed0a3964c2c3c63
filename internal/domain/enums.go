package domain

type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

type ReminderKind string

const (
	ReminderInitial       ReminderKind = "initial"
	ReminderGentle        ReminderKind = "gentle"
	ReminderEncouragement ReminderKind = "encouragement"
	ReminderFinal         ReminderKind = "final"
	ReminderCustom        ReminderKind = "custom"
)

type CadenceProfile string

const (
	CadenceStandard   CadenceProfile = "standard"
	CadenceAggressive CadenceProfile = "aggressive"
	CadenceGentle     CadenceProfile = "gentle"
	CadenceCustom     CadenceProfile = "custom"
)

type ProjectPriority string

const (
	PriorityLow      ProjectPriority = "low"
	PriorityMedium   ProjectPriority = "medium"
	PriorityHigh     ProjectPriority = "high"
	PriorityCritical ProjectPriority = "critical"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectArchived ProjectStatus = "archived"
)

// ValidSessionStatuses is the canonical set of accepted session status strings.
var ValidSessionStatuses = map[string]bool{
	"pending": true, "in_progress": true, "completed": true, "abandoned": true,
}

// ValidReminderKinds is the canonical set of accepted reminder kind strings.
var ValidReminderKinds = map[string]bool{
	"initial": true, "gentle": true, "encouragement": true,
	"final": true, "custom": true,
}

// ValidCadenceProfiles is the canonical set of accepted cadence profile strings.
var ValidCadenceProfiles = map[string]bool{
	"standard": true, "aggressive": true, "gentle": true, "custom": true,
}

// ValidProjectPriorities is the canonical set of accepted priority strings.
var ValidProjectPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "critical": true,
}
