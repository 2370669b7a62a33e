// Package job runs background work on Asynq, a Redis-backed queue.
//
// The API enqueues with asynq.Client; an asynq.Server started next to
// the HTTP server consumes the tasks.
package job

import (
	"context"

	"github.com/deppfellow/workout-api/internal/config"
	"github.com/deppfellow/workout-api/internal/lib/email"
	"github.com/deppfellow/workout-api/internal/metrics"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Queue names and their worker share.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

type notificationSender interface {
	SendAthleteRegisteredEmail(to string, a email.AthleteRegistered) error
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client

	server   *asynq.Server
	enqueuer enqueuer
	logger   *zerolog.Logger
	metrics  *metrics.Metrics

	// emails is nil when notifications are not configured.
	emails   notificationSender
	notifyTo string
}

// NewJobService creates a JobService configured to use Redis from cfg.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, m *metrics.Metrics) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			QueueCritical: 6,
			QueueDefault:  3,
			QueueLow:      1,
		},
		Logger:   newAsynqLogger(logger),
		LogLevel: asynq.WarnLevel,
	})

	j := &JobService{
		Client:   client,
		server:   server,
		enqueuer: client,
		logger:   logger,
		metrics:  m,
	}

	if cfg.Integration.NotificationsEnabled() {
		j.emails = email.NewClient(cfg, logger)
		j.notifyTo = cfg.Integration.NotificationEmail
	} else {
		logger.Info().Msg("registration notifications disabled: resend api key or notification email missing")
	}

	return j
}

// Mux routes task types to handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskAthleteRegistered, j.handleAthleteRegisteredTask)
	return mux
}

// Start starts the workers without blocking.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for running tasks and releases Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("closing asynq client")
	}
}
