package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldgate/fieldgate/internal/api/middleware"
	"github.com/fieldgate/fieldgate/internal/graph"
)

// GraphHandler executes fields from the frozen schema under the identity
// resolved for the request.
type GraphHandler struct {
	schema *graph.Schema
}

func NewGraphHandler(schema *graph.Schema) *GraphHandler {
	return &GraphHandler{schema: schema}
}

type graphRequest struct {
	Field string         `json:"field" validate:"required"`
	Args  map[string]any `json:"args"`
}

type graphResponse struct {
	Data any `json:"data"`
}

// Execute invokes a single named field.
//
// @Summary      Execute a field
// @Tags         graph
// @Accept       json
// @Produce      json
// @Param        body  body      graphRequest  true  "Field name and arguments"
// @Success      200   {object}  graphResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /graph [post]
func (h *GraphHandler) Execute(c echo.Context) error {
	var req graphRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.schema.Execute(c.Request().Context(), middleware.IdentityFrom(c), req.Field, req.Args)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, graphResponse{Data: result})
}
