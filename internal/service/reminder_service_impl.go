package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nudgekit/nudge/internal/cadence"
	"github.com/nudgekit/nudge/internal/db"
	"github.com/nudgekit/nudge/internal/delivery"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/nudgekit/nudge/internal/email"
	"github.com/nudgekit/nudge/internal/repository"
)

type reminderService struct {
	sessions   repository.SessionRepo
	projects   repository.ProjectRepo
	logs       repository.ReminderLogRepo
	uow        db.UnitOfWork
	deliverer  delivery.Deliverer
	baseURL    string
	senderName string
	observer   UseCaseObserver
}

func NewReminderService(
	sessions repository.SessionRepo,
	projects repository.ProjectRepo,
	logs repository.ReminderLogRepo,
	uow db.UnitOfWork,
	deliverer delivery.Deliverer,
	baseURL string,
	senderName string,
	observers ...UseCaseObserver,
) ReminderService {
	return &reminderService{
		sessions:   sessions,
		projects:   projects,
		logs:       logs,
		uow:        uow,
		deliverer:  deliverer,
		baseURL:    baseURL,
		senderName: senderName,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *reminderService) Preview(ctx context.Context, sessionID string, now time.Time) (*TimelinePreview, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, session.ProjectID)
	if err != nil {
		return nil, err
	}
	sent, err := s.logs.KindsSent(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	schedule, err := cadence.Schedule(session.CreatedAt, session.CadenceProfile, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]TimelineEntry, 0, len(schedule))
	for _, r := range schedule {
		entries = append(entries, TimelineEntry{
			Kind:        r.Kind,
			ScheduledAt: r.ScheduledAt,
			Sent:        sent[r.Kind],
			Due:         cadence.IsDue(r.ScheduledAt, now),
		})
	}

	decision, err := cadence.Decide(session.Snapshot(), session.CadenceProfile, nil, sent, now)
	if err != nil {
		return nil, err
	}
	return &TimelinePreview{
		Session:    session,
		Project:    project,
		Entries:    entries,
		Suppressed: decision.Suppressed,
		Next:       decision.Reminder,
	}, nil
}

func (s *reminderService) Tick(ctx context.Context, now time.Time, dryRun bool) ([]TickResult, error) {
	sessions, err := s.sessions.ListRemindable(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing remindable sessions: %w", err)
	}

	results := make([]TickResult, 0, len(sessions))
	for _, session := range sessions {
		started := time.Now()
		result := s.tickSession(ctx, session, now, dryRun)
		results = append(results, result)

		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reminder_tick_session",
			Duration:  time.Since(started),
			Success:   result.Outcome != OutcomeError,
			Err:       result.Err,
			StartedAt: started,
			Fields: map[string]any{
				"session": result.SessionID,
				"kind":    string(result.Kind),
				"outcome": string(result.Outcome),
			},
		})
	}
	return results, nil
}

// tickSession evaluates and, when warranted, dispatches one reminder for
// one session. Failures are contained in the result so one bad session
// cannot stall the whole pass.
func (s *reminderService) tickSession(ctx context.Context, session *domain.OnboardingSession, now time.Time, dryRun bool) TickResult {
	result := TickResult{SessionID: session.ID, ClientEmail: session.ClientEmail}

	sent, err := s.logs.KindsSent(ctx, session.ID)
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = err
		return result
	}

	decision, err := cadence.Decide(session.Snapshot(), session.CadenceProfile, nil, sent, now)
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = err
		return result
	}
	if decision.Suppressed != cadence.SuppressNone {
		result.Outcome = OutcomeSuppressed
		result.Suppressed = decision.Suppressed
		return result
	}
	if decision.Reminder == nil {
		result.Outcome = OutcomeNoneDue
		return result
	}
	result.Kind = decision.Reminder.Kind

	project, err := s.projects.GetByID(ctx, session.ProjectID)
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = err
		return result
	}

	msg, err := email.Build(s.buildInput(session, project, decision.Reminder.Kind, "", ""), s.baseURL, now)
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = err
		return result
	}

	if dryRun {
		result.Outcome = OutcomeDryRun
		return result
	}

	// Re-read the session right before dispatch: the client may have
	// become active (or finished) since the list query.
	fresh, err := s.sessions.GetByID(ctx, session.ID)
	if err != nil {
		result.Outcome = OutcomeError
		result.Err = err
		return result
	}
	if reason := cadence.EvaluateSuppression(fresh.Status, fresh.LastActivityAt, fresh.ExpiresAt, now); reason != cadence.SuppressNone {
		result.Outcome = OutcomeSuppressed
		result.Suppressed = reason
		return result
	}

	// The ledger row is written first and only commits once the
	// transport accepts the message. A concurrent tick that already
	// holds the (session, kind) row surfaces as ErrAlreadySent and
	// nothing is delivered twice.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs := repository.NewSQLiteReminderLogRepo(tx)
		if err := txLogs.Record(ctx, &domain.ReminderLog{
			ID:        uuid.New().String(),
			SessionID: session.ID,
			Kind:      decision.Reminder.Kind,
			Subject:   msg.Subject,
			SentAt:    now,
		}); err != nil {
			return err
		}
		return s.deliverer.Deliver(ctx, delivery.Message{
			To:      session.ClientEmail,
			ToName:  session.ClientName,
			Email:   msg,
			Session: session.ID,
		})
	})
	switch {
	case err == nil:
		result.Outcome = OutcomeSent
	case errors.Is(err, repository.ErrAlreadySent):
		result.Outcome = OutcomeLostRace
	default:
		result.Outcome = OutcomeError
		result.Err = err
	}
	return result
}

func (s *reminderService) History(ctx context.Context, sessionID string) ([]*domain.ReminderLog, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.logs.ListBySession(ctx, sessionID)
}

func (s *reminderService) RenderPreview(ctx context.Context, sessionID string, kind domain.ReminderKind, customSubject, customMessage string, now time.Time) (*domain.EmailMessage, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, session.ProjectID)
	if err != nil {
		return nil, err
	}
	msg, err := email.Build(s.buildInput(session, project, kind, customSubject, customMessage), s.baseURL, now)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *reminderService) buildInput(session *domain.OnboardingSession, project *domain.ClientProject, kind domain.ReminderKind, customSubject, customMessage string) email.BuildInput {
	return email.BuildInput{
		Kind:                 kind,
		RecipientName:        session.DisplayName(),
		ProjectName:          project.Name,
		AccessToken:          session.AccessToken,
		CompletionPercentage: session.CompletionPercentage,
		CurrentStep:          session.CurrentStep,
		TotalSteps:           session.TotalSteps,
		ExpiresAt:            session.ExpiresAt,
		SenderName:           s.senderName,
		CustomSubject:        customSubject,
		CustomMessage:        customMessage,
	}
}
