package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "todo-api/docs"
	"todo-api/internal/application/controller"
	"todo-api/internal/application/middleware"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/limiter"
	"todo-api/internal/domain/usecase/health"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/internal/infra/metrics"
)

// Dependencies are the collaborators the HTTP layer is built from.
// A nil Limiter disables rate limiting.
type Dependencies struct {
	TodoUseCase     todo.UseCase
	HealthUseCase   health.UseCase
	HealthDBGateway db.HealthDBGateway
	Metrics         *metrics.Metrics
	Limiter         limiter.Limiter
}

// New builds the echo instance with every route and middleware registered.
func New(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}

	middleware.SetupRequestID(e)
	middleware.SetupRequestLogger(e)
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics(deps.Metrics, deps.HealthDBGateway))

	e.RouteNotFound(middleware.NotFoundRoute, func(c echo.Context) error {
		return echo.ErrNotFound
	})

	api := e.Group("")

	var todoMiddlewares []echo.MiddlewareFunc
	if deps.Limiter != nil {
		todoMiddlewares = append(todoMiddlewares, middleware.RateLimit(deps.Limiter))
	}

	controller.NewPageController(api).InitPageRoutes()
	controller.NewTodoController(api, deps.TodoUseCase).InitTodoRoutes(todoMiddlewares...)
	controller.NewHealthController(api, deps.HealthUseCase).InitHealthRoutes()
	controller.NewMetricsController(api, deps.Metrics).InitMetricsRoutes()

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
