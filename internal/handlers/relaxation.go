package handlers

import (
	"net/http"

	"haven/internal/db"
	"haven/internal/models"

	"github.com/gin-gonic/gin"
)

type RelaxationHandler struct{}

func NewRelaxationHandler() *RelaxationHandler {
	return &RelaxationHandler{}
}

// ListResources returns the seeded relaxation tools, optionally filtered by
// kind (breathing, meditation, soundscape).
func (h *RelaxationHandler) ListResources(c *gin.Context) {
	query := db.DB.Order("id ASC")
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var resources []models.Resource
	if err := query.Find(&resources).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}
