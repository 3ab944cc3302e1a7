package handler

import (
	"net/http"

	"github.com/ndsrf/wedding-sub002/internal/middleware"
	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// authenticatedUser pulls the user id the auth middleware stored in the
// context. On failure it writes the response and returns ok=false.
func authenticatedUser(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}

	return userID, true
}

// loadOwnedWedding fetches a wedding and verifies the caller is its planner.
// On failure it writes 404 or 403 and returns nil.
func loadOwnedWedding(c *gin.Context, repo repository.WeddingRepositoryInterface, weddingID, userID uuid.UUID) *model.Wedding {
	wedding, err := repo.GetByID(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wedding"})
		return nil
	}
	if wedding == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wedding not found"})
		return nil
	}
	if wedding.PlannerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this wedding"})
		return nil
	}
	return wedding
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return uuid.Nil, false
	}
	return id, true
}
