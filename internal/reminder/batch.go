package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"planner/internal/auth"
	"planner/internal/task"
)

// ErrRunInProgress is returned when a run is started while another one is
// still active (manual trigger racing the cron trigger).
var ErrRunInProgress = errors.New("daily reminder run already in progress")

// DueUser is one active user together with their due-today tasks, ordered
// priority-first with category and course preloaded for display.
type DueUser struct {
	User  auth.User
	Tasks []task.Task
}

// Store is the persistence surface the batch job needs.
type Store interface {
	UsersWithTasksDueToday(ctx context.Context, now time.Time) ([]DueUser, error)
	RecordReminders(ctx context.Context, userID uint64, tasks []task.Task, sentAt time.Time) error
}

// Sender delivers one email and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, toEmail, toName, subject, htmlContent string) (string, error)
}

// Batch is the daily reminder fan-out. Users are processed strictly
// sequentially with a fixed pause between them so the email gateway sees a
// predictable load. One user's failure never stops the run; only a failed
// user fetch is fatal.
type Batch struct {
	store  Store
	sender Sender
	delay  time.Duration

	mu sync.Mutex
}

// NewBatch wires the job. delay is the inter-user pause; tests set it to 0.
func NewBatch(store Store, sender Sender, delay time.Duration) *Batch {
	return &Batch{store: store, sender: sender, delay: delay}
}

// Run executes one full reminder pass and returns one BatchResult per
// processed user, in fetch order.
func (b *Batch) Run(ctx context.Context) ([]BatchResult, error) {
	if !b.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer b.mu.Unlock()

	log.Info().Msg("starting daily task reminder job")

	users, err := b.store.UsersWithTasksDueToday(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("daily reminder job aborted: fetching users failed")
		return nil, fmt.Errorf("fetch users with due tasks: %w", err)
	}

	if len(users) == 0 {
		log.Info().Msg("no users have tasks due today")
		return []BatchResult{}, nil
	}

	log.Info().Int("users", len(users)).Msg("found users with tasks due today")

	results := make([]BatchResult, 0, len(users))
	for i := range users {
		du := &users[i]
		if len(du.Tasks) == 0 {
			continue // fetch filter should prevent this; treat as a no-op
		}

		results = append(results, b.processUser(ctx, du))

		if b.delay > 0 && i < len(users)-1 {
			time.Sleep(b.delay)
		}
	}

	success := 0
	for _, r := range results {
		if r.Success {
			success++
		}
	}
	log.Info().
		Int("success", success).
		Int("failures", len(results)-success).
		Msg("daily task reminder job completed")

	return results, nil
}

// processUser is the per-user failure boundary: compose, send, record.
// A failure at any step is captured in the result and the run moves on.
func (b *Batch) processUser(ctx context.Context, du *DueUser) BatchResult {
	res := BatchResult{
		UserID:     du.User.ID,
		Email:      du.User.Email,
		TasksCount: len(du.Tasks),
	}

	log.Info().
		Str("email", du.User.Email).
		Int("tasks", len(du.Tasks)).
		Msg("processing reminders for user")

	subject, html := ComposeReminderEmail(&du.User, du.Tasks)

	msgID, err := b.sender.Send(ctx, du.User.Email, du.User.FullName(), subject, html)
	if err != nil {
		log.Error().Err(err).Str("email", du.User.Email).Msg("failed to send reminders to user")
		res.Error = err.Error()
		return res
	}

	if err := b.store.RecordReminders(ctx, du.User.ID, du.Tasks, time.Now()); err != nil {
		log.Error().Err(err).Str("email", du.User.Email).Msg("failed to record reminders for user")
		res.Error = err.Error()
		return res
	}

	log.Info().
		Str("email", du.User.Email).
		Int("tasks", len(du.Tasks)).
		Str("message_id", msgID).
		Msg("reminders sent")

	res.Success = true
	res.MessageID = msgID
	return res
}
