package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"planner/internal/reminder"
)

// dailySpec fires the reminder job every day at 10:00 in the configured
// timezone.
const dailySpec = "0 10 * * *"

// Runner is the reminder batch as the scheduler sees it. The manual
// trigger endpoint calls the same Run, so both paths share one code path.
type Runner interface {
	Run(ctx context.Context) ([]reminder.BatchResult, error)
}

type Scheduler struct {
	cron *cron.Cron
	loc  *time.Location
}

// New builds the daily schedule in the given IANA timezone. The zone is
// fixed at construction; it is configuration, not a runtime knob.
func New(batch Runner, timezone string) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(dailySpec, func() {
		log.Info().Str("timezone", timezone).Msg("daily task reminder cron triggered")
		if _, err := batch.Run(context.Background()); err != nil {
			if errors.Is(err, reminder.ErrRunInProgress) {
				log.Warn().Msg("skipping cron run: a reminder run is already in progress")
				return
			}
			log.Error().Err(err).Msg("daily task reminder cron run failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("register daily reminder schedule: %w", err)
	}

	return &Scheduler{cron: c, loc: loc}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Str("spec", dailySpec).Str("timezone", s.loc.String()).Msg("daily task reminders scheduled")
}

// Stop halts the timer; a run already started keeps going to completion.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
