package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Davidayo16/HOD-app/internal/middleware"
	"github.com/Davidayo16/HOD-app/internal/model"
	"github.com/Davidayo16/HOD-app/internal/schedule"
	"github.com/Davidayo16/HOD-app/internal/service"
)

type AuthHandler struct {
	ids *service.IdentityService
}

func NewAuthHandler(ids *service.IdentityService) *AuthHandler {
	return &AuthHandler{ids: ids}
}

type registerRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	StudentID string `json:"studentId"`
	Role      string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, schedule.E(schedule.KindValidation, "name, email and password are required"))
		return
	}

	u, err := h.ids.Register(c.Request.Context(), service.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		StudentID: req.StudentID,
		Role:      model.UserRole(req.Role),
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, schedule.E(schedule.KindValidation, "email and password are required"))
		return
	}

	token, u, err := h.ids.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"token": token, "user": u})
}

func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondErr(c, schedule.E(schedule.KindAuthentication, "identity not established"))
		return
	}

	u, err := h.ids.Profile(c.Request.Context(), caller)
	if err != nil {
		respondErr(c, err)
		return
	}

	respond(c, http.StatusOK, u)
}
