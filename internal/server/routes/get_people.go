package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/peoplegraph/internal/server/middleware"
	"github.com/OFFIS-RIT/peoplegraph/pkg/common"

	"github.com/labstack/echo/v4"
)

func GetPeopleHandler(c echo.Context) error {
	type getPeopleParams struct {
		Offset int `query:"offset" validate:"gte=0"`
		Limit  int `query:"limit" validate:"gte=0,lte=1000"`
	}

	params := new(getPeopleParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	people := c.(*middleware.AppContext).App.Engine.Graph().People()
	total := len(people)

	start := min(params.Offset, total)
	end := total
	if params.Limit > 0 {
		end = min(start+params.Limit, total)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total":  total,
		"people": people[start:end],
	})
}

func GetPersonHandler(c echo.Context) error {
	type getPersonParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(getPersonParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	person, ok := c.(*middleware.AppContext).App.Engine.Graph().Person(params.ID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Person not found"})
	}

	return c.JSON(http.StatusOK, person)
}

func GetLabelsHandler(c echo.Context) error {
	relation, err := common.ParseRelation(c.Param("relation"))
	if err != nil {
		return errorResponse(c, err)
	}

	labels := c.(*middleware.AppContext).App.Engine.Graph().Labels(relation)
	return c.JSON(http.StatusOK, map[string]any{
		"relation": relation,
		"labels":   labels,
	})
}

func GetStatsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, c.(*middleware.AppContext).App.Engine.Graph().Stats())
}
