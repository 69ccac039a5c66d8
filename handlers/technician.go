package handlers

import (
	"net/http"

	technicianRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/technician"
	"github.com/FlareMindsTech/righttouch-backend/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TechnicianHandler exposes the availability toggle, the one piece of
// technician state the dispatch core mutates.
type TechnicianHandler struct {
	Repo   technicianRepo.TechnicianRepository
	Logger *zap.Logger
}

func NewTechnicianHandler(repo technicianRepo.TechnicianRepository, logger *zap.Logger) *TechnicianHandler {
	return &TechnicianHandler{Repo: repo, Logger: logger}
}

// SetAvailability flips the caller's online flag. Offline technicians drop
// out of the eligibility predicate and receive no further broadcasts.
func (h *TechnicianHandler) SetAvailability(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var input struct {
		IsOnline *bool `json:"isOnline"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.IsOnline == nil {
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "isOnline is required", Result: gin.H{}})
		return
	}

	if err := h.Repo.SetAvailability(c.Request.Context(), actor.ProfileID, *input.IsOnline); err != nil {
		respondError(c, err)
		return
	}

	h.Logger.Info("technician availability updated",
		zap.String("technicianId", actor.ProfileID), zap.Bool("isOnline", *input.IsOnline))
	respondOK(c, http.StatusOK, "Availability updated", gin.H{"isOnline": *input.IsOnline})
}
