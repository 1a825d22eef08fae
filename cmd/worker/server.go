package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"quotebook-backend/internal/config"
	bookjob "quotebook-backend/internal/domains/book/job"
	"quotebook-backend/pkg/container"
)

// Worker consumes maintenance tasks from redis.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(c *container.Container) *Worker {
	server := asynq.NewServer(
		redisOpt(&c.Config.Redis),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	refresh := bookjob.NewRefreshHandler(c.BookService)

	mux := asynq.NewServeMux()
	mux.HandleFunc(bookjob.TypeRefreshAuthorNames, refresh.HandleRefreshAuthorNames)
	mux.HandleFunc(bookjob.TypeRefreshOne, refresh.HandleRefreshOne)

	return &Worker{server: server, mux: mux}
}

func (w *Worker) Run() error {
	log.Info().Msg("starting task worker")
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
