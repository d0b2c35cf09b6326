package scheduling

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carebridge/scheduler/internal/platform/auth"
	"github.com/carebridge/scheduler/internal/platform/lock"
	"github.com/carebridge/scheduler/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("scheduler", "clinician", "lead"))
	read.GET("/appointments", h.ListAppointments)
	read.GET("/appointments/groups", h.DayGroups)
	read.GET("/appointments/:id", h.GetAppointment)

	write := api.Group("", auth.RequireRole("scheduler", "lead"))
	write.POST("/appointments", h.CreateAppointment)
	write.POST("/appointments/validate", h.ValidateAppointment)
	write.PUT("/appointments/:id", h.UpdateAppointment)
	write.POST("/appointments/:id/cancel", h.CancelAppointment)
	write.DELETE("/appointments/:id", h.DeleteAppointment)
}

// validationResponse pairs the appointment (when persisted) with the
// validation outcome so clients always see errors and warnings.
type validationResponse struct {
	Appointment *Appointment     `json:"appointment,omitempty"`
	Result      ValidationResult `json:"result"`
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.CreateAppointment(c.Request().Context(), &a)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return echo.NewHTTPError(http.StatusConflict, "another booking for this subject is in progress")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !result.Valid {
		return c.JSON(http.StatusUnprocessableEntity, validationResponse{Result: result})
	}
	return c.JSON(http.StatusCreated, validationResponse{Appointment: &a, Result: result})
}

func (h *Handler) ValidateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.ValidateAppointment(c.Request().Context(), &a)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, validationResponse{Result: result})
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := map[string]string{}
	for _, key := range []string{"staff", "patient", "status", "category", "date"} {
		if v := c.QueryParam(key); v != "" {
			params[key] = v
		}
	}
	items, total, err := h.svc.SearchAppointments(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = id
	result, err := h.svc.UpdateAppointment(c.Request().Context(), &a)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		if errors.Is(err, lock.ErrNotAcquired) {
			return echo.NewHTTPError(http.StatusConflict, "another booking for this subject is in progress")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !result.Valid {
		return c.JSON(http.StatusUnprocessableEntity, validationResponse{Result: result})
	}
	return c.JSON(http.StatusOK, validationResponse{Appointment: &a, Result: result})
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.CancelAppointment(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteAppointment(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DayGroups(c echo.Context) error {
	patientID, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}
	day, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	var locationID *uuid.UUID
	if raw := c.QueryParam("location_id"); raw != "" {
		lid, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid location_id")
		}
		locationID = &lid
	}
	groups, err := h.svc.DayGroups(c.Request().Context(), patientID, day, locationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, groups)
}
