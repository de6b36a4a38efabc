package server

import (
	"net/http"

	"github.com/OFFIS-RIT/peoplegraph/internal/server/middleware"
	"github.com/OFFIS-RIT/peoplegraph/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Query routes
	apiRoutes.POST("/query", routes.QueryHandler, middleware.RequirePermission("query.run"))
	apiRoutes.POST("/conditions", routes.ConditionsHandler, middleware.RequirePermission("query.run"))

	// Graph routes
	apiRoutes.GET("/people", routes.GetPeopleHandler, middleware.RequirePermission("people.view"))
	apiRoutes.GET("/people/:id", routes.GetPersonHandler, middleware.RequirePermission("people.view"))
	apiRoutes.GET("/labels/:relation", routes.GetLabelsHandler, middleware.RequirePermission("labels.view"))
	apiRoutes.GET("/stats", routes.GetStatsHandler, middleware.RequirePermission("labels.view"))
}
