package service

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const schedulerBackoff = 60 * time.Second

// Broadcaster is invoked by the scheduler at every fire.
type Broadcaster func(ctx context.Context) error

// Scheduler fires a broadcast at each top of the hour in a fixed timezone.
// A failed broadcast is retried after a fixed backoff, indefinitely, until
// the scheduler is stopped.
type Scheduler struct {
	broadcast Broadcaster
	schedule  cron.Schedule
	zone      *time.Location
	backoff   time.Duration
	cancel    context.CancelFunc
	done      chan struct{}
	mutex     *sync.Mutex
}

func NewScheduler(offsetHours int, broadcast Broadcaster) (*Scheduler, error) {
	schedule, err := cron.ParseStandard("0 * * * *")
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule: %w", err)
	}

	return &Scheduler{
		broadcast: broadcast,
		schedule:  schedule,
		zone:      domain.Zone(offsetHours),
		backoff:   schedulerBackoff,
		mutex:     &sync.Mutex{},
	}, nil
}

// Start launches the wait/fire loop. Starting a running scheduler does
// nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cancel != nil {
		return
	}

	// A dead context would make the loop exit immediately while the
	// cancel handle stays set, wedging every later Start.
	if ctx.Err() != nil {
		log.Warn().Msg("refusing to start scheduler on a canceled context")
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.cancel = cancel
	s.done = done

	log.Info().Time("next", s.NextFire(time.Now())).Msg("starting hourly scheduler")

	go s.run(runCtx, done)
}

// Stop aborts any in-flight wait and blocks until the loop has exited.
// Stopping a stopped scheduler does nothing.
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done

	s.cancel = nil
	s.done = nil

	log.Info().Msg("stopped hourly scheduler")
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		now := time.Now()
		next := s.NextFire(now)

		log.Debug().Time("next", next).Msg("waiting for next fire")

		select {
		case <-time.After(next.Sub(now)):
		case <-ctx.Done():
			return
		}

		// Both select arms can be ready at once; never fire after Stop.
		if ctx.Err() != nil {
			return
		}

		if err := s.fire(ctx); err != nil {
			log.Error().Err(err).Dur("backoff", s.backoff).Msg("broadcast failed, backing off")

			select {
			case <-time.After(s.backoff):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Scheduler) fire(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("broadcast panicked: %v", r)
		}
	}()

	return s.broadcast(ctx)
}

// NextFire computes the first top-of-hour boundary strictly after now in the
// scheduler's timezone.
func (s *Scheduler) NextFire(now time.Time) time.Time {
	return s.schedule.Next(now.In(s.zone))
}
