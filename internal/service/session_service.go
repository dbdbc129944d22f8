package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"littlestar/internal/llm"
	"littlestar/internal/models"
	"littlestar/internal/store"
)

// SessionStatus classifies the outcome of one activity attempt.
type SessionStatus string

const (
	StatusOK       SessionStatus = "ok"
	StatusDenied   SessionStatus = "denied"
	StatusRejected SessionStatus = "rejected"
	StatusError    SessionStatus = "error"
)

// Child-facing messages. Never technical, never blaming, and never echoing
// filtered content back.
const (
	msgQuietHours   = "It's quiet time right now. Little Star Rabbit is resting too. See you later!"
	msgQuotaReached = "You've used all your star time for today! Come back tomorrow for more adventures."
	msgRejected     = "That one didn't come out quite right. Let's try a different idea!"
	msgUnconfigured = "Little Star Rabbit needs a grown-up's help to get set up. Please ask a grown-up!"
	msgUnavailable  = "The stars are a little cloudy right now. Let's try again in a moment."
	msgEmptyWonder  = "What are you wondering about? Type your question first!"
)

// SessionResult is what an activity attempt produced. Text is only set when
// Status is StatusOK; Message carries the child-facing explanation otherwise.
type SessionResult struct {
	Status     SessionStatus
	Text       string
	Message    string
	Denial     DenialReason
	Rejection  *RejectionReason
	Engagement models.EngagementSnapshot
	StoryID    string
}

// StoryHistory is the slice of the history repository the orchestrator needs.
type StoryHistory interface {
	SaveStory(text, length, topic, tone string, at time.Time) (string, error)
}

// QuotaNotifier is told when today's screen time runs out. Satisfied by
// EmailService; nil disables notification.
type QuotaNotifier interface {
	SendQuotaReachedNotice(ctx context.Context, childName string, limitMinutes int) error
}

// SessionOrchestrator runs the full activity pipeline: gate, prompt, generate,
// filter, record. It is the only component that talks to everything else; the
// pieces below it stay pure or single-purpose.
type SessionOrchestrator struct {
	store    *store.Store
	client   llm.Client
	gate     *UsageGate
	prompts  *PromptBuilder
	filter   *ContentFilter
	routines *RoutineBuilder
	tracker  *EngagementTracker
	history  StoryHistory
	notifier QuotaNotifier

	// now is swappable for tests.
	now func() time.Time
}

// NewSessionOrchestrator wires the activity pipeline together.
func NewSessionOrchestrator(st *store.Store, client llm.Client, tracker *EngagementTracker, history StoryHistory) *SessionOrchestrator {
	return &SessionOrchestrator{
		store:    st,
		client:   client,
		gate:     NewUsageGate(),
		prompts:  NewPromptBuilder(),
		filter:   NewContentFilter(),
		routines: NewRoutineBuilder(),
		tracker:  tracker,
		history:  history,
		now:      time.Now,
	}
}

// SetQuotaNotifier installs the parent notification hook.
func (o *SessionOrchestrator) SetQuotaNotifier(n QuotaNotifier) {
	o.notifier = n
}

// denialMessage maps a gate denial to its child-facing message.
func denialMessage(reason DenialReason) string {
	if reason == DenialQuietHours {
		return msgQuietHours
	}
	return msgQuotaReached
}

// generationMessage maps a generation failure to its child-facing message.
// Only a missing configuration points the child at a grown-up; every other
// failure reads as transient.
func generationMessage(err error) string {
	if llm.KindOf(err) == llm.KindUnconfigured {
		return msgUnconfigured
	}
	return msgUnavailable
}

// Perform runs one activity end to end. Every path through it either returns
// content with updated engagement, or a non-OK status with a child-facing
// message and the engagement state untouched.
func (o *SessionOrchestrator) Perform(ctx context.Context, kind models.ActivityKind, opts Options) (SessionResult, error) {
	if !kind.Valid() {
		return SessionResult{}, fmt.Errorf("unknown activity kind %q", kind)
	}
	now := o.now()

	settings, err := o.store.Settings()
	if err != nil {
		return SessionResult{}, err
	}
	profile, err := o.store.Profile()
	if err != nil {
		return SessionResult{}, err
	}
	ledger, err := o.store.Usage()
	if err != nil {
		return SessionResult{}, err
	}

	if decision := o.gate.Check(now, ledger, settings); !decision.Allowed {
		return SessionResult{
			Status:  StatusDenied,
			Message: denialMessage(decision.Reason),
			Denial:  decision.Reason,
		}, nil
	}

	// Routines are fixed templates: no model call, no filtering, but they
	// still count as a completed activity.
	if kind == models.ActivityRoutine {
		return o.accept(kind, opts, o.routines.Build(opts.TimeOfDay, profile), now)
	}

	request, err := o.prompts.Build(kind, opts, profile, settings)
	if err != nil {
		if errors.Is(err, ErrEmptyQuestion) {
			return SessionResult{Status: StatusError, Message: msgEmptyWonder}, nil
		}
		return SessionResult{}, err
	}

	text, err := o.client.GenerateText(ctx, request)
	if err != nil {
		log.Printf("Generation failed for %s: %v", kind, err)
		return SessionResult{
			Status:  StatusError,
			Message: generationMessage(err),
		}, nil
	}

	if reason := o.filter.Validate(text, settings.CustomWordFilters); reason != nil {
		log.Printf("Filter rejected %s output", kind)
		return SessionResult{
			Status:    StatusRejected,
			Message:   msgRejected,
			Rejection: reason,
		}, nil
	}

	return o.accept(kind, opts, text, now)
}

// accept records an accepted activity: engagement first, then story history
// for stories. Recording failures surface as errors, not as content loss; the
// text is still returned to the handler inside the error-free result paths.
func (o *SessionOrchestrator) accept(kind models.ActivityKind, opts Options, text string, now time.Time) (SessionResult, error) {
	snapshot, err := o.tracker.RecordActivity(kind, now)
	if err != nil {
		return SessionResult{}, err
	}

	result := SessionResult{
		Status:     StatusOK,
		Text:       text,
		Engagement: snapshot,
	}

	if kind == models.ActivityStory && o.history != nil {
		id, err := o.history.SaveStory(text, opts.Length, opts.Topic, opts.Tone, now)
		if err != nil {
			// The story was already delivered; losing the history row is
			// not worth failing the whole activity over.
			log.Printf("Failed to save story history: %v", err)
		} else {
			result.StoryID = id
		}
	}
	return result, nil
}

// EnterChildMode checks the gate and, when allowed, charges one configured
// session's worth of minutes to today's ledger up front. There is no
// wall-clock metering; the charge is the whole accounting.
func (o *SessionOrchestrator) EnterChildMode() (GateDecision, error) {
	now := o.now()

	settings, err := o.store.Settings()
	if err != nil {
		return GateDecision{}, err
	}
	ledger, err := o.store.Usage()
	if err != nil {
		return GateDecision{}, err
	}

	decision := o.gate.Check(now, ledger, settings)
	if !decision.Allowed {
		return decision, nil
	}

	if err := o.store.AddUsageMinutes(now, settings.SessionLengthMinutes); err != nil {
		return GateDecision{}, fmt.Errorf("failed to charge session minutes: %w", err)
	}

	// Tell the parent once this charge used up the day's quota.
	if o.notifier != nil && ledger.MinutesOn(now)+settings.SessionLengthMinutes >= settings.DailyLimitMinutes {
		profile, err := o.store.Profile()
		if err != nil {
			log.Printf("Failed to load profile for quota notice: %v", err)
			return decision, nil
		}
		go func() {
			if err := o.notifier.SendQuotaReachedNotice(context.Background(), profile.Name, settings.DailyLimitMinutes); err != nil {
				log.Printf("Failed to send quota notice: %v", err)
			}
		}()
	}
	return decision, nil
}

// Progress returns the current engagement snapshot without recording
// anything.
func (o *SessionOrchestrator) Progress() (models.EngagementSnapshot, error) {
	return o.tracker.Snapshot(o.now())
}

// ReadAloud synthesizes speech for already-accepted text.
func (o *SessionOrchestrator) ReadAloud(ctx context.Context, text string) ([]byte, error) {
	return o.client.SynthesizeSpeech(ctx, text)
}
