package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/workout-api/internal/lib/email"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/hibiken/asynq"
)

// TaskAthleteRegistered is fired once per committed registration.
const TaskAthleteRegistered = "athlete:registered"

type AthleteRegisteredPayload struct {
	AthleteID      string    `json:"athlete_id"`
	Name           string    `json:"name"`
	CPF            string    `json:"cpf"`
	Category       string    `json:"category"`
	TrainingCenter string    `json:"training_center"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// NewAthleteRegisteredTask builds the task for a committed athlete.
func NewAthleteRegisteredTask(a *model.Athlete) (*asynq.Task, error) {
	payload, err := json.Marshal(AthleteRegisteredPayload{
		AthleteID:      a.ID.String(),
		Name:           a.Name,
		CPF:            a.CPF,
		Category:       a.Category.Name,
		TrainingCenter: a.TrainingCenter.Name,
		RegisteredAt:   a.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskAthleteRegistered,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueLow),
		asynq.Timeout(30*time.Second),
	), nil
}

// AthleteRegistered enqueues the notification for a. It is a no-op
// when notifications are disabled.
func (j *JobService) AthleteRegistered(ctx context.Context, a *model.Athlete) error {
	if j == nil || j.emails == nil {
		j.metricsResult("skipped")
		return nil
	}

	task, err := NewAthleteRegisteredTask(a)
	if err != nil {
		return fmt.Errorf("building %s task: %w", TaskAthleteRegistered, err)
	}

	info, err := j.enqueuer.EnqueueContext(ctx, task, asynq.Unique(time.Hour), asynq.TaskID(a.ID.String()))
	if err != nil {
		j.metricsResult("failed")
		return fmt.Errorf("enqueueing %s task: %w", TaskAthleteRegistered, err)
	}

	j.metricsResult("enqueued")
	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("athlete_id", a.ID.String()).
		Msg("registration notification enqueued")
	return nil
}

func (j *JobService) handleAthleteRegisteredTask(ctx context.Context, t *asynq.Task) error {
	var p AthleteRegisteredPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal athlete registered payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskAthleteRegistered).
		Str("athlete_id", p.AthleteID).
		Logger()

	if j.emails == nil {
		log.Warn().Msg("dropping registration notification, email not configured")
		return nil
	}

	log.Info().Msg("processing registration notification")

	err := j.emails.SendAthleteRegisteredEmail(j.notifyTo, email.AthleteRegistered{
		Name:           p.Name,
		CPF:            p.CPF,
		Category:       p.Category,
		TrainingCenter: p.TrainingCenter,
		RegisteredAt:   p.RegisteredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		j.metricsResult("failed")
		log.Error().Err(err).Msg("failed to send registration notification")
		return err
	}

	j.metricsResult("sent")
	log.Info().Msg("registration notification sent")
	return nil
}

func (j *JobService) metricsResult(result string) {
	if j == nil {
		return
	}
	j.metrics.Notification(result)
}
