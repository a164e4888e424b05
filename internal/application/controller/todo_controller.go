package controller

import (
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/util/numberutils"
)

type TodoController struct {
	api     *echo.Group
	useCase todo.UseCase
}

func NewTodoController(api *echo.Group, useCase todo.UseCase) *TodoController {
	return &TodoController{api: api, useCase: useCase}
}

// InitTodoRoutes initializes todo routes. The middlewares only wrap these routes.
func (controller *TodoController) InitTodoRoutes(middlewares ...echo.MiddlewareFunc) {
	controller.api.GET("/todos", controller.List, middlewares...)
	controller.api.POST("/todos", controller.Create, middlewares...)
	controller.api.PUT("/todos/:id", controller.Update, middlewares...)
	controller.api.DELETE("/todos/:id", controller.Delete, middlewares...)
}

// List godoc
// @Summary List todos
// @Description Every todo not deleted, open ones first, newest first within each group
// @Tags todos
// @Produce json
// @Success 200 {array} model.TodoResponse
// @Router /todos [get]
func (controller *TodoController) List(c echo.Context) error {
	todos, err := controller.useCase.List(c.Request().Context())
	if err != nil {
		return controller.handleError(c, err)
	}
	return c.JSON(http.StatusOK, model.NewTodoResponses(todos))
}

// Create godoc
// @Summary Create a todo
// @Description Content is trimmed and must not be blank
// @Tags todos
// @Accept json
// @Produce json
// @Param todo body model.CreateTodoDTO true "Todo content"
// @Success 201 {object} model.TodoResponse
// @Failure 400 {object} model.ErrorResponse "content is required"
// @Router /todos [post]
func (controller *TodoController) Create(c echo.Context) error {
	dto := model.NewCreateTodoDTO(readPayload(c))

	created, err := controller.useCase.Create(c.Request().Context(), dto)
	if err != nil {
		return controller.handleError(c, err)
	}
	return c.JSON(http.StatusCreated, model.NewTodoResponse(*created))
}

// Update godoc
// @Summary Update a todo
// @Description Partial update, only the fields present in the body are applied
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "Todo id"
// @Param todo body model.UpdateTodoDTO true "Fields to change"
// @Success 200 {object} model.TodoResponse
// @Failure 400 {object} model.ErrorResponse "content cannot be empty"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /todos/{id} [put]
func (controller *TodoController) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	dto := model.NewUpdateTodoDTO(readPayload(c))

	updated, err := controller.useCase.Update(c.Request().Context(), id, dto)
	if err != nil {
		return controller.handleError(c, err)
	}
	return c.JSON(http.StatusOK, model.NewTodoResponse(*updated))
}

// Delete godoc
// @Summary Delete a todo
// @Description Soft delete, the todo disappears from the list but stays stored
// @Tags todos
// @Param id path int true "Todo id"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /todos/{id} [delete]
func (controller *TodoController) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := controller.useCase.Delete(c.Request().Context(), id); err != nil {
		return controller.handleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (controller *TodoController) handleError(c echo.Context, err error) error {
	var validationErr *todo.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: validationErr.Message})
	case errors.Is(err, todo.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound)
	default:
		log.Error(msg.GetMessage("todo.error.unexpected"),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}

// parseID accepts unsigned decimal ids only; anything else does not name a todo.
func parseID(c echo.Context) (uint, error) {
	id, err := numberutils.ToUintWithError(c.Param("id"))
	if err != nil || uint64(id) > math.MaxInt64 {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return id, nil
}

// readPayload decodes a JSON object body. Bodies that are not declared as JSON, fail to
// parse or are not objects become an empty payload.
func readPayload(c echo.Context) model.Payload {
	if !isJSON(c.Request().Header.Get(echo.HeaderContentType)) {
		return model.Payload{}
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return model.Payload{}
	}
	return model.DecodePayload(body)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == echo.MIMEApplicationJSON ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}
