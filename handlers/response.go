package handlers

import (
	"errors"
	"net/http"

	"github.com/FlareMindsTech/righttouch-backend/services/dispatch"

	"github.com/gin-gonic/gin"
)

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

func respondOK(c *gin.Context, status int, message string, result interface{}) {
	if result == nil {
		result = gin.H{}
	}
	c.JSON(status, apiResponse{Success: true, Message: message, Result: result})
}

// respondError maps the dispatch error taxonomy onto HTTP statuses.
// Conflicts are an expected outcome ("job taken"), distinguishable from
// validation and permission failures so clients can refresh instead of
// showing a failure banner.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case dispatch.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, dispatch.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, dispatch.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, dispatch.ErrConflict):
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, apiResponse{Success: false, Message: message, Result: gin.H{}})
}
