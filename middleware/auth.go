package middleware

import (
	"net/http"
	"strings"

	profileRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/profile"
	"github.com/FlareMindsTech/righttouch-backend/models"
	"github.com/FlareMindsTech/righttouch-backend/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware validates the bearer token and resolves the caller's
// role-specific profile. One profile repository is registered per role; the
// variant is picked here, once, so downstream code never dispatches on a
// role string again.
func AuthMiddleware(profiles ...profileRepo.Repository) gin.HandlerFunc {
	byRole := make(map[models.Role]profileRepo.Repository, len(profiles))
	for _, p := range profiles {
		byRole[p.Role()] = p
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		repo, ok := byRole[models.Role(claims.Role)]
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unknown role"})
			return
		}

		profileID, err := repo.ResolveProfileID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve profile"})
			return
		}
		if profileID == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}

		c.Set(actorKey, models.Actor{
			UserID:    claims.UserID,
			Role:      models.Role(claims.Role),
			ProfileID: profileID,
		})
		c.Next()
	}
}

// GetActor returns the verified actor set by AuthMiddleware.
func GetActor(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
