package controller

import (
	"github.com/labstack/echo/v4"

	"todo-api/internal/infra/metrics"
)

type MetricsController struct {
	api     *echo.Group
	metrics *metrics.Metrics
}

func NewMetricsController(api *echo.Group, m *metrics.Metrics) *MetricsController {
	return &MetricsController{api: api, metrics: m}
}

// InitMetricsRoutes exposes the Prometheus registry
func (controller *MetricsController) InitMetricsRoutes() {
	controller.api.GET("/metrics", echo.WrapHandler(controller.metrics.Handler()))
}
