package coverage

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carebridge/scheduler/internal/domain/roster"
	"github.com/carebridge/scheduler/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("scheduler", "clinician", "lead"))
	read.GET("/coverage/report", h.TeamReport)

	write := api.Group("", auth.RequireRole("scheduler", "lead"))
	write.POST("/coverage/auto-schedule", h.AutoSchedule)
}

func (h *Handler) TeamReport(c echo.Context) error {
	teamID, err := uuid.Parse(c.QueryParam("team_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "team_id is required")
	}
	day, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	report, err := h.svc.TeamReport(c.Request().Context(), teamID, day)
	if err != nil {
		if errors.Is(err, roster.ErrTeamNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "team not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

type autoScheduleRequest struct {
	TeamID uuid.UUID `json:"team_id"`
	Date   string    `json:"date"`
	DryRun bool      `json:"dry_run"`
}

func (h *Handler) AutoSchedule(c echo.Context) error {
	var req autoScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.TeamID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "team_id is required")
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	result, err := h.svc.AutoSchedule(c.Request().Context(), req.TeamID, day, req.DryRun)
	if err != nil {
		if errors.Is(err, roster.ErrTeamNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "team not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
