package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Davidayo16/HOD-app/internal/model"
	"github.com/Davidayo16/HOD-app/internal/schedule"
)

type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, response{Success: true, Data: data})
}

// respondErr maps an error kind onto an HTTP status and writes the envelope.
func respondErr(c *gin.Context, err error) {
	c.JSON(kindStatus(schedule.KindOf(err)), response{Success: false, Error: err.Error()})
}

func kindStatus(kind schedule.Kind) int {
	switch kind {
	case schedule.KindAuthentication:
		return http.StatusUnauthorized
	case schedule.KindAuthorization:
		return http.StatusForbidden
	case schedule.KindNotFound:
		return http.StatusNotFound
	case schedule.KindValidation:
		return http.StatusBadRequest
	case schedule.KindSlotConflict:
		return http.StatusConflict
	case schedule.KindInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type studentJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
}

type appointmentJSON struct {
	ID           string       `json:"id"`
	StudentName  string       `json:"studentName"`
	StudentEmail string       `json:"studentEmail"`
	StudentID    string       `json:"studentId"`
	Date         string       `json:"date"`
	Time         string       `json:"time"`
	Purpose      string       `json:"purpose"`
	Notes        string       `json:"notes,omitempty"`
	Status       string       `json:"status"`
	HODNotes     string       `json:"hodNotes,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Student      *studentJSON `json:"student,omitempty"`
}

func toAppointmentJSON(a *model.Appointment) appointmentJSON {
	out := appointmentJSON{
		ID:           a.ID.String(),
		StudentName:  a.StudentName,
		StudentEmail: a.StudentEmail,
		StudentID:    a.StudentID,
		Date:         a.Day().Format("2006-01-02"),
		Time:         a.Time,
		Purpose:      a.Purpose,
		Notes:        a.Notes,
		Status:       string(a.Status),
		HODNotes:     a.HODNotes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.Student != nil {
		out.Student = &studentJSON{
			ID:        a.Student.ID.String(),
			Name:      a.Student.Name,
			Email:     a.Student.Email,
			StudentID: a.Student.StudentID,
		}
	}
	return out
}

func toAppointmentListJSON(appts []model.Appointment) []appointmentJSON {
	out := make([]appointmentJSON, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentJSON(&appts[i]))
	}
	return out
}
