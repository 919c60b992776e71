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

type CompanionHandler struct {
	companion *services.CompanionService
}

func NewCompanionHandler() *CompanionHandler {
	return &CompanionHandler{
		companion: services.GetCompanionService(),
	}
}

func (h *CompanionHandler) ListSessions(c *gin.Context) {
	user := currentUser(c)

	var sessions []models.ChatSession
	if err := db.DB.Where("user_id = ?", user.ID).
		Order("updated_at DESC").
		Limit(50).
		Find(&sessions).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *CompanionHandler) SessionDetail(c *gin.Context) {
	user := currentUser(c)

	var session models.ChatSession
	if err := db.DB.Where("sid = ? AND user_id = ?", c.Param("sid"), user.ID).
		First(&session).Error; err != nil {
		fail(c, http.StatusNotFound, "session not found")
		return
	}

	var messages []models.ChatMessage
	if err := db.DB.Where("session_id = ?", session.ID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":  session,
		"messages": messages,
	})
}

type chatRequest struct {
	SessionSid string `json:"session_sid"`
	Message    string `json:"message" binding:"required"`
}

// Chat handles one companion turn: persist the user message, produce the
// reply, persist it, return both. One turn in flight per session at a time
// is the client's responsibility (the send control stays disabled).
func (h *CompanionHandler) Chat(c *gin.Context) {
	user := currentUser(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "message is required")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		fail(c, http.StatusBadRequest, "message cannot be empty")
		return
	}

	session, err := h.resolveSession(user, req.SessionSid, message)
	if err != nil {
		fail(c, http.StatusNotFound, "session not found")
		return
	}

	var history []models.ChatMessage
	if err := db.DB.Where("session_id = ?", session.ID).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	userMsg := models.ChatMessage{
		SessionID: session.ID,
		Role:      models.ChatRoleUser,
		Content:   message,
	}
	if err := db.DB.Create(&userMsg).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	reply := h.companion.Reply(c.Request.Context(), history, message)

	assistantMsg := models.ChatMessage{
		SessionID: session.ID,
		Role:      models.ChatRoleAssistant,
		Content:   reply,
	}
	if err := db.DB.Create(&assistantMsg).Error; err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	// Touch the session so it sorts to the top of the list
	db.DB.Model(session).Update("updated_at", assistantMsg.CreatedAt)

	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"message": userMsg,
		"reply":   assistantMsg,
	})
}

// resolveSession loads the caller's session by sid, or starts a new one
// titled after the first message.
func (h *CompanionHandler) resolveSession(user *models.User, sid, firstMessage string) (*models.ChatSession, error) {
	if sid != "" {
		var session models.ChatSession
		if err := db.DB.Where("sid = ? AND user_id = ?", sid, user.ID).First(&session).Error; err != nil {
			return nil, err
		}
		return &session, nil
	}

	title := firstMessage
	if runes := []rune(title); len(runes) > 40 {
		title = string(runes[:40]) + "..."
	}
	session := models.ChatSession{
		Sid:    utils.NewPublicID(8),
		UserID: user.ID,
		Title:  title,
	}
	if err := db.DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
