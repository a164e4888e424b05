package controller

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/index.html
var indexPage []byte

type PageController struct {
	api *echo.Group
}

func NewPageController(api *echo.Group) *PageController {
	return &PageController{api: api}
}

// InitPageRoutes serves the browser client
func (controller *PageController) InitPageRoutes() {
	controller.api.GET("/", controller.Index)
}

func (controller *PageController) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexPage)
}
