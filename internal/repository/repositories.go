package repository

import (
	"github.com/deppfellow/workout-api/internal/server"
)

// Repositories is the container services are built from.
type Repositories struct {
	Store UnitOfWork
}

// NewRepositories builds the Postgres-backed repositories on s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Store: NewPgStore(s.DB.Pool),
	}
}
