package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/peoplegraph/internal/server/middleware"
	"github.com/OFFIS-RIT/peoplegraph/internal/util"
	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/query"

	"github.com/labstack/echo/v4"
)

type queryResponse struct {
	common.QueryResult
	Trace *query.QueryTraceSnapshot `json:"trace,omitempty"`
}

func QueryHandler(c echo.Context) error {
	type queryBody struct {
		Text string `json:"text" validate:"required,max=1000"`
	}

	data := new(queryBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	engine := c.(*middleware.AppContext).App.Engine
	trace := query.NewQueryTrace()

	res, err := engine.Ask(c.Request().Context(), util.SanitizeText(data.Text), trace)
	if err != nil {
		return errorResponse(c, err)
	}

	resp := queryResponse{QueryResult: res}
	if c.QueryParam("trace") == "true" {
		snap := trace.Snapshot()
		resp.Trace = &snap
	}
	return c.JSON(http.StatusOK, resp)
}

func ConditionsHandler(c echo.Context) error {
	type conditionsBody struct {
		Conditions [][]string `json:"conditions" validate:"required"`
	}

	data := new(conditionsBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	raw := make([]common.RawCondition, len(data.Conditions))
	for i, cond := range data.Conditions {
		raw[i] = common.RawCondition(cond)
	}

	engine := c.(*middleware.AppContext).App.Engine
	res, err := engine.Run(raw)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, res)
}
