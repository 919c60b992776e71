package handlers

import (
	"haven/internal/middleware"
	"haven/internal/models"

	"github.com/gin-gonic/gin"
)

// currentUser returns the session user, or nil for anonymous requests.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// fail writes the standard error body.
func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// genericFailure is the notice shown on persistence failures; the user can
// simply retry, nothing sticks across submissions.
const genericFailure = "something went wrong, please try again"
