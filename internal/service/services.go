// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated input, services enforce the workout rules (name resolution,
// partial updates) and call the repositories.
package service

import (
	"github.com/deppfellow/workout-api/internal/lib/job"
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/deppfellow/workout-api/internal/server"
)

type Services struct {
	Auth    *AuthService
	Job     *job.JobService
	Athlete *AthleteService
	Catalog *CatalogService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Auth:    NewAuthService(s),
		Job:     s.Job,
		Athlete: NewAthleteService(repos.Store, notifier, s.Metrics),
		Catalog: NewCatalogService(repos.Store),
	}, nil
}
