package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/workout-api/internal/server"
)

// AuthService configures Clerk for the write-route guard.
type AuthService struct {
	server  *server.Server
	enabled bool
}

// NewAuthService sets the Clerk secret key when auth is enabled.
func NewAuthService(s *server.Server) *AuthService {
	enabled := s.Config.Auth.Enabled && s.Config.Auth.SecretKey != ""
	if enabled {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}
	return &AuthService{
		server:  s,
		enabled: enabled,
	}
}

// Enabled reports whether write routes require a Clerk session.
func (a *AuthService) Enabled() bool {
	return a != nil && a.enabled
}
