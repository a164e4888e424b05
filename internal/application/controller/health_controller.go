package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/health"
)

type HealthController struct {
	api     *echo.Group
	useCase health.UseCase
}

func NewHealthController(api *echo.Group, useCase health.UseCase) *HealthController {
	return &HealthController{api: api, useCase: useCase}
}

// InitHealthRoutes initializes health check routes
func (controller *HealthController) InitHealthRoutes() {
	controller.api.GET("/health", controller.CheckHealth())
	controller.api.GET("/health/ready", controller.CheckReadiness())
}

// CheckHealth godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func (controller *HealthController) CheckHealth() echo.HandlerFunc {
	return func(c echo.Context) error {
		healthResponse := controller.useCase.CheckHealth()

		return c.JSON(http.StatusOK, healthResponse)
	}
}

// CheckReadiness godoc
// @Summary Readiness probe
// @Description Pings the database and, when rate limiting is enabled, Redis
// @Tags health
// @Produce json
// @Success 200 {object} model.ReadinessResponse
// @Failure 503 {object} model.ReadinessResponse
// @Router /health/ready [get]
func (controller *HealthController) CheckReadiness() echo.HandlerFunc {
	return func(c echo.Context) error {
		readiness := controller.useCase.CheckReadiness(c.Request().Context())

		if readiness.Status != model.StatusUp {
			return c.JSON(http.StatusServiceUnavailable, readiness)
		}
		return c.JSON(http.StatusOK, readiness)
	}
}
