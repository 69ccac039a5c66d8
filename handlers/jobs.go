package handlers

import (
	"net/http"

	"github.com/FlareMindsTech/righttouch-backend/middleware"
	"github.com/FlareMindsTech/righttouch-backend/models"
	booking "github.com/FlareMindsTech/righttouch-backend/services/booking"
	"github.com/FlareMindsTech/righttouch-backend/services/dispatch"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobHandler exposes the technician-facing job endpoints: the open-offer
// feed, offer responses and job history.
type JobHandler struct {
	Feed     dispatch.FeedService
	Resolver dispatch.ResolverService
	Bookings booking.BookingService
	Logger   *zap.Logger
}

func NewJobHandler(feed dispatch.FeedService, resolver dispatch.ResolverService, bookings booking.BookingService, logger *zap.Logger) *JobHandler {
	return &JobHandler{Feed: feed, Resolver: resolver, Bookings: bookings, Logger: logger}
}

// GetMyJobs returns the caller's open offers.
func (h *JobHandler) GetMyJobs(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	jobs, err := h.Feed.OpenOffers(c.Request.Context(), actor.ProfileID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Jobs fetched successfully", jobs)
}

// RespondToJob applies an accept or reject to one offer.
func (h *JobHandler) RespondToJob(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	offerID := c.Param("id")

	var input struct {
		Status models.OfferResponse `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "invalid input: " + err.Error(), Result: gin.H{}})
		return
	}

	claimed, err := h.Resolver.Respond(c.Request.Context(), offerID, actor.ProfileID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Status == models.ResponseReject {
		respondOK(c, http.StatusOK, "Job rejected successfully", nil)
		return
	}
	respondOK(c, http.StatusOK, "Job accepted successfully", claimed)
}

// JobHistory returns the technician's finished jobs.
func (h *JobHandler) JobHistory(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	jobs, err := h.Bookings.TechnicianHistory(c.Request.Context(), actor.ProfileID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Job history fetched", jobs)
}

// CurrentJobs returns the technician's in-flight jobs.
func (h *JobHandler) CurrentJobs(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	jobs, err := h.Bookings.TechnicianCurrentJobs(c.Request.Context(), actor.ProfileID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Active jobs fetched", jobs)
}
