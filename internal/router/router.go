// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/workout-api/internal/handler"
	"github.com/deppfellow/workout-api/internal/middleware"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the full middleware chain and
// every route.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Collect(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerAthleteRoutes(router, h, middlewares.Auth.Guard())
	registerCatalogRoutes(router, h, middlewares.Auth.Guard())

	return router
}

func registerAthleteRoutes(r *echo.Echo, h *handler.Handlers, guard echo.MiddlewareFunc) {
	a := h.Athlete
	g := r.Group("/athletes")

	g.POST("", handler.Handle(a.Handler, a.Create, http.StatusCreated, &handler.CreateAthleteRequest{}), guard)
	g.GET("", handler.Handle(a.Handler, a.List, http.StatusOK, &handler.ListRequest{}))
	g.GET("/:id", handler.Handle(a.Handler, a.Get, http.StatusOK, &handler.AthleteIDRequest{}))
	g.PATCH("/:id", handler.Handle(a.Handler, a.Update, http.StatusOK, &handler.UpdateAthleteRequest{}), guard)
	g.DELETE("/:id", handler.HandleNoContent(a.Handler, a.Delete, http.StatusNoContent, &handler.AthleteIDRequest{}), guard)
}

func registerCatalogRoutes(r *echo.Echo, h *handler.Handlers, guard echo.MiddlewareFunc) {
	c := h.Catalog

	categories := r.Group("/categories")
	categories.POST("", handler.Handle(c.Handler, c.CreateCategory, http.StatusCreated, &handler.CreateCategoryRequest{}), guard)
	categories.GET("", handler.Handle(c.Handler, c.ListCategories, http.StatusOK, &handler.ListRequest{}))
	categories.GET("/:id", handler.Handle(c.Handler, c.GetCategory, http.StatusOK, &handler.IDRequest{}))

	centers := r.Group("/training_centers")
	centers.POST("", handler.Handle(c.Handler, c.CreateTrainingCenter, http.StatusCreated, &handler.CreateTrainingCenterRequest{}), guard)
	centers.GET("", handler.Handle(c.Handler, c.ListTrainingCenters, http.StatusOK, &handler.ListRequest{}))
	centers.GET("/:id", handler.Handle(c.Handler, c.GetTrainingCenter, http.StatusOK, &handler.IDRequest{}))
}
