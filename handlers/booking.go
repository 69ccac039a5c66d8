package handlers

import (
	"net/http"

	"github.com/FlareMindsTech/righttouch-backend/middleware"
	"github.com/FlareMindsTech/righttouch-backend/models"
	booking "github.com/FlareMindsTech/righttouch-backend/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking creates a booking and broadcasts it. Customer only.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "invalid input: " + err.Error(), Result: gin.H{}})
		return
	}

	created, err := h.Service.Create(c.Request.Context(), actor.ProfileID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Booking created & broadcasted", created)
}

// ListBookings returns bookings scoped to the caller's role.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	bookings, err := h.Service.ListFor(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Bookings fetched successfully", bookings)
}

// CustomerHistory returns the customer's booking history.
func (h *BookingHandler) CustomerHistory(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	bookings, err := h.Service.CustomerHistory(c.Request.Context(), actor.ProfileID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Customer booking history", bookings)
}

// UpdateStatus moves a booking one forward step. Owning technician only.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	bookingID := c.Param("id")

	var input struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "invalid input: " + err.Error(), Result: gin.H{}})
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), bookingID, actor.ProfileID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Status updated", updated)
}

// CancelBooking cancels a booking. Owning customer only.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	bookingID := c.Param("id")

	updated, err := h.Service.Cancel(c.Request.Context(), bookingID, actor.ProfileID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Booking cancelled successfully", updated)
}
