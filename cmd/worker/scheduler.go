package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"quotebook-backend/internal/config"
	bookjob "quotebook-backend/internal/domains/book/job"
)

// Scheduler enqueues the periodic snapshot recompute. Author renames in the
// catalog are rare, so a nightly pass is plenty.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(cfg *config.Config) *Scheduler {
	scheduler := asynq.NewScheduler(redisOpt(&cfg.Redis), nil)

	entryID, err := scheduler.Register("0 3 * * *", bookjob.NewRefreshAuthorNamesTask())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register refresh schedule")
	}
	log.Info().Str("entry", entryID).Msg("registered author_name refresh schedule")

	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) Run() error {
	log.Info().Msg("starting task scheduler")
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
