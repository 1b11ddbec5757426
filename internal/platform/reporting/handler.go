package reporting

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler provides HTTP handlers for the query catalog.
type Handler struct {
	lib *Library
}

// NewHandler creates a new reporting handler.
func NewHandler(lib *Library) *Handler {
	return &Handler{lib: lib}
}

// RegisterRoutes registers the query API routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/queries")
	g.GET("", h.ListQueries)
	g.GET("/:id", h.EvaluateQuery)
}

// ListQueries handles GET /queries. An optional page parameter filters the
// catalog.
func (h *Handler) ListQueries(c echo.Context) error {
	return c.JSON(http.StatusOK, h.lib.Queries(c.QueryParam("page")))
}

// EvaluateQuery handles GET /queries/:id. Query parameters are bound by the
// names listed in the catalog entry.
func (h *Handler) EvaluateQuery(c echo.Context) error {
	id := c.Param("id")
	q := FindQuery(id)
	if q == nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("query %s not found", id))
	}

	args := make([]any, 0, len(q.Params))
	for _, p := range q.Params {
		v := c.QueryParam(p)
		if v == "" {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("missing parameter %q", p))
		}
		args = append(args, v)
	}

	res, err := h.lib.Run(c.Request().Context(), id, args...)
	if err != nil {
		switch {
		case errors.Is(err, ErrQueryNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrMissingParam):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("query failed: %v", err))
	}
	return c.JSON(http.StatusOK, res)
}
