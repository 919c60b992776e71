package handlers

import (
	"net/http"
	"strings"

	"haven/internal/db"
	"haven/internal/models"
	"haven/internal/services"
	"haven/internal/utils"

	"github.com/gin-gonic/gin"
)

type JournalHandler struct {
	mood *services.MoodService
}

func NewJournalHandler() *JournalHandler {
	return &JournalHandler{
		mood: services.GetMoodService(),
	}
}

func (h *JournalHandler) List(c *gin.Context) {
	user := currentUser(c)

	var entries []models.JournalEntry
	if err := db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *JournalHandler) Detail(c *gin.Context) {
	user := currentUser(c)

	var entry models.JournalEntry
	if err := db.DB.Where("jid = ? AND user_id = ?", c.Param("jid"), user.ID).
		First(&entry).Error; err != nil {
		fail(c, http.StatusNotFound, "entry not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":        entry,
		"content_html": utils.RenderMarkdown(entry.Content),
	})
}

type journalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

func (h *JournalHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		fail(c, http.StatusBadRequest, "content cannot be empty")
		return
	}

	entry := models.JournalEntry{
		Jid:     utils.NewPublicID(8),
		UserID:  user.ID,
		Title:   req.Title,
		Content: content,
	}

	// Mood scoring is an enrichment: a failed call saves the entry unscored.
	if reading, ok := h.mood.Score(c.Request.Context(), content); ok {
		entry.MoodScore = &reading.Score
		entry.MoodLabel = reading.Label
		entry.MoodReflection = reading.Reflection
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *JournalHandler) Update(c *gin.Context) {
	user := currentUser(c)

	var entry models.JournalEntry
	if err := db.DB.Where("jid = ? AND user_id = ?", c.Param("jid"), user.ID).
		First(&entry).Error; err != nil {
		fail(c, http.StatusNotFound, "entry not found")
		return
	}

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		fail(c, http.StatusBadRequest, "content cannot be empty")
		return
	}

	entry.Title = req.Title
	entry.Content = content

	// Re-score on edit; the old reading no longer describes the text.
	entry.MoodScore = nil
	entry.MoodLabel = ""
	entry.MoodReflection = ""
	if reading, ok := h.mood.Score(c.Request.Context(), content); ok {
		entry.MoodScore = &reading.Score
		entry.MoodLabel = reading.Label
		entry.MoodReflection = reading.Reflection
	}

	if err := db.DB.Save(&entry).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *JournalHandler) Delete(c *gin.Context) {
	user := currentUser(c)

	var entry models.JournalEntry
	if err := db.DB.Where("jid = ? AND user_id = ?", c.Param("jid"), user.ID).
		First(&entry).Error; err != nil {
		fail(c, http.StatusNotFound, "entry not found")
		return
	}

	if err := db.DB.Delete(&entry).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}
	c.Status(http.StatusNoContent)
}
