package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Davidayo16/HOD-app/internal/middleware"
	"github.com/Davidayo16/HOD-app/internal/model"
	"github.com/Davidayo16/HOD-app/internal/schedule"
	"github.com/Davidayo16/HOD-app/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type createAppointmentRequest struct {
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
	Notes   string `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondErr(c, schedule.E(schedule.KindAuthentication, "identity not established"))
		return
	}

	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, schedule.E(schedule.KindValidation, "date, time and purpose are required"))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondErr(c, err)
		return
	}

	appt, err := h.svc.Create(c.Request.Context(), caller, service.CreateInput{
		Date:    date,
		Time:    req.Time,
		Purpose: req.Purpose,
		Notes:   req.Notes,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusCreated, toAppointmentJSON(appt))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondErr(c, schedule.E(schedule.KindAuthentication, "identity not established"))
		return
	}

	appts, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusOK, toAppointmentListJSON(appts))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondErr(c, schedule.E(schedule.KindAuthentication, "identity not established"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	appt, err := h.svc.Get(c.Request.Context(), caller, id)
	if err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusOK, toAppointmentJSON(appt))
}

type updateAppointmentRequest struct {
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Purpose *string `json:"purpose"`
	Notes   *string `json:"notes"`
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondErr(c, schedule.E(schedule.KindAuthentication, "identity not established"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, schedule.E(schedule.KindValidation, "invalid request body"))
		return
	}

	in := service.UpdateInput{
		Time:    req.Time,
		Purpose: req.Purpose,
		Notes:   req.Notes,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondErr(c, err)
			return
		}
		in.Date = &date
	}

	appt, err := h.svc.Update(c.Request.Context(), caller, id, in)
	if err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusOK, toAppointmentJSON(appt))
}

type setStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	HODNotes string `json:"hodNotes"`
}

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondErr(c, schedule.E(schedule.KindAuthentication, "identity not established"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, schedule.E(schedule.KindValidation, "status is required"))
		return
	}

	appt, err := h.svc.SetStatus(c.Request.Context(), caller, id, model.AppointmentStatus(req.Status), req.HODNotes)
	if err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusOK, toAppointmentJSON(appt))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondErr(c, schedule.E(schedule.KindAuthentication, "identity not established"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, id); err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "appointment deleted successfully"})
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondErr(c, schedule.E(schedule.KindAuthentication, "identity not established"))
		return
	}

	date, err := parseDate(c.Param("date"))
	if err != nil {
		respondErr(c, err)
		return
	}

	slots, err := h.svc.Availability(c.Request.Context(), caller, date)
	if err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusOK, slots)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, schedule.E(schedule.KindValidation, "invalid appointment id")
	}
	return id, nil
}

// parseDate accepts the plain calendar form used by the API and, for
// compatibility with older clients, a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, schedule.E(schedule.KindValidation, "date must be formatted as YYYY-MM-DD")
}
