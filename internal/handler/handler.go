// Package handler is the HTTP layer.
//
// It binds and validates requests through the validation package,
// calls the service layer and writes the response. Errors are returned
// to echo so the global error handler formats them.
package handler

import (
	"github.com/deppfellow/workout-api/internal/server"
)

// Handler holds the shared application dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}
