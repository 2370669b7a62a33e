package handler

import (
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
	"github.com/labstack/echo/v4"
)

// CatalogHandler serves categories and training centers.
type CatalogHandler struct {
	Handler
	catalog *service.CatalogService
}

func NewCatalogHandler(s *server.Server, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

func (h *CatalogHandler) CreateCategory(c echo.Context, req *CreateCategoryRequest) (*model.Category, error) {
	return h.catalog.CreateCategory(c.Request().Context(), req.Name)
}

func (h *CatalogHandler) ListCategories(c echo.Context, _ *ListRequest) ([]model.Category, error) {
	return h.catalog.ListCategories(c.Request().Context())
}

func (h *CatalogHandler) GetCategory(c echo.Context, req *IDRequest) (*model.Category, error) {
	return h.catalog.GetCategory(c.Request().Context(), req.id)
}

func (h *CatalogHandler) CreateTrainingCenter(c echo.Context, req *CreateTrainingCenterRequest) (*model.TrainingCenter, error) {
	return h.catalog.CreateTrainingCenter(c.Request().Context(), req.toModel())
}

func (h *CatalogHandler) ListTrainingCenters(c echo.Context, _ *ListRequest) ([]model.TrainingCenter, error) {
	return h.catalog.ListTrainingCenters(c.Request().Context())
}

func (h *CatalogHandler) GetTrainingCenter(c echo.Context, req *IDRequest) (*model.TrainingCenter, error) {
	return h.catalog.GetTrainingCenter(c.Request().Context(), req.id)
}
