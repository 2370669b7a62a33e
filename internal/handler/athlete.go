package handler

import (
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
	"github.com/labstack/echo/v4"
)

type AthleteHandler struct {
	Handler
	athletes *service.AthleteService
}

func NewAthleteHandler(s *server.Server, athletes *service.AthleteService) *AthleteHandler {
	return &AthleteHandler{
		Handler:  NewHandler(s),
		athletes: athletes,
	}
}

func (h *AthleteHandler) Create(c echo.Context, req *CreateAthleteRequest) (*model.Athlete, error) {
	return h.athletes.Register(c.Request().Context(), req.toModel())
}

func (h *AthleteHandler) List(c echo.Context, _ *ListRequest) ([]model.Athlete, error) {
	return h.athletes.List(c.Request().Context())
}

func (h *AthleteHandler) Get(c echo.Context, req *AthleteIDRequest) (*model.Athlete, error) {
	return h.athletes.Get(c.Request().Context(), req.id)
}

func (h *AthleteHandler) Update(c echo.Context, req *UpdateAthleteRequest) (*model.Athlete, error) {
	return h.athletes.Update(c.Request().Context(), req.id, req.toPatch())
}

func (h *AthleteHandler) Delete(c echo.Context, req *AthleteIDRequest) error {
	return h.athletes.Delete(c.Request().Context(), req.id)
}
