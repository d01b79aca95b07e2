package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Davidayo16/HOD-app/internal/handlers"
	"github.com/Davidayo16/HOD-app/internal/middleware"
	"github.com/Davidayo16/HOD-app/internal/schedule"
	"github.com/Davidayo16/HOD-app/internal/service"
)

func SetupRoutes(router *gin.Engine, ids *service.IdentityService, appts *service.AppointmentService) {
	authHandler := handlers.NewAuthHandler(ids)
	apptHandler := handlers.NewAppointmentHandler(appts)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"message": "server is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.Auth(ids), authHandler.Me)
		}

		appointments := api.Group("/appointments")
		appointments.Use(middleware.Auth(ids))
		{
			appointments.POST("", apptHandler.Create)
			appointments.GET("", apptHandler.List)
			appointments.GET("/availability/:date", apptHandler.Availability)
			appointments.GET("/:id", apptHandler.Get)
			appointments.PUT("/:id", apptHandler.Update)
			appointments.DELETE("/:id", apptHandler.Delete)

			// Status changes are the HOD's call; the role guard here is what
			// enforces that, the service operation does not.
			appointments.PATCH("/:id/status",
				middleware.RequireRole(schedule.RoleHOD),
				apptHandler.SetStatus,
			)
		}
	}
}
