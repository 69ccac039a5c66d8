package routes

import (
	"github.com/FlareMindsTech/righttouch-backend/handlers"
	"github.com/FlareMindsTech/righttouch-backend/middleware"
	"github.com/FlareMindsTech/righttouch-backend/models"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the customer-facing booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, auth gin.HandlerFunc, h *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	api.Use(auth)
	{
		api.GET("", h.ListBookings)

		customer := api.Group("")
		customer.Use(middleware.RequireRole(models.RoleCustomer))
		customer.POST("", h.CreateBooking)
		customer.GET("/history", h.CustomerHistory)
		customer.PUT("/:id/cancel", h.CancelBooking)

		technician := api.Group("")
		technician.Use(middleware.RequireRole(models.RoleTechnician))
		technician.PUT("/:id/status", h.UpdateStatus)
	}
}

// RegisterJobRoutes registers the technician-facing job endpoints.
func RegisterJobRoutes(r *gin.Engine, auth gin.HandlerFunc, h *handlers.JobHandler) {
	api := r.Group("/api/jobs")
	api.Use(auth, middleware.RequireRole(models.RoleTechnician))
	{
		api.GET("", h.GetMyJobs)
		api.PUT("/:id/respond", h.RespondToJob)
		api.GET("/history", h.JobHistory)
		api.GET("/current", h.CurrentJobs)
	}
}

// RegisterTechnicianRoutes registers technician self-service endpoints.
func RegisterTechnicianRoutes(r *gin.Engine, auth gin.HandlerFunc, h *handlers.TechnicianHandler) {
	api := r.Group("/api/technicians")
	api.Use(auth, middleware.RequireRole(models.RoleTechnician))
	{
		api.PUT("/availability", h.SetAvailability)
	}
}
