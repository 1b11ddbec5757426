package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medicare/medicare/pkg/pagination"
)

// Handler exposes the dashboard over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates a dashboard handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the dashboard routes on api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/pages", h.ListPages)
	api.GET("/pages/:id", h.GetPage)
	api.GET("/patients", h.SearchPatients)
	api.GET("/patients/:id", h.GetCarePlan)
	api.POST("/admissions/:id/activities", h.SubmitActivity)
}

type pageInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Widgets     int    `json:"widgets"`
}

// ListPages handles GET /pages.
func (h *Handler) ListPages(c echo.Context) error {
	out := make([]pageInfo, 0, len(Pages))
	for _, p := range Pages {
		out = append(out, pageInfo{ID: p.ID, Title: p.Title, Description: p.Description, Widgets: len(p.Widgets)})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"hospital": h.svc.Hospital(),
		"pages":    out,
	})
}

// GetPage handles GET /pages/:id.
func (h *Handler) GetPage(c echo.Context) error {
	res, err := h.svc.RenderPage(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

// SearchPatients handles GET /patients?q=term with limit/offset or page
// pagination.
func (h *Handler) SearchPatients(c echo.Context) error {
	p := pagination.FromContext(c)
	resp, err := h.svc.SearchPatients(c.Request().Context(), c.QueryParam("q"), p)
	if err != nil {
		if errors.Is(err, ErrEmptySearch) {
			return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("search failed: %v", err))
	}
	resp.Links = p.Links(c.Request().URL.Path, c.QueryParams(), resp.Total)
	return c.JSON(http.StatusOK, resp)
}

// GetCarePlan handles GET /patients/:id.
func (h *Handler) GetCarePlan(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	plan, err := h.svc.PatientCarePlan(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, plan)
}

// SubmitActivity handles POST /admissions/:id/activities. The form is
// validated and acknowledged but not stored.
func (h *Handler) SubmitActivity(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid admission id")
	}
	var form ActivityForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(&form); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusAccepted, ActivityReceipt{
		AdmissionID: id,
		Saved:       false,
		Message:     "daily activity accepted; the dashboard is read-only and did not store it",
	})
}
