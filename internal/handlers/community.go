package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"haven/internal/services"
	"haven/internal/store"
	"haven/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	posts       store.PostStore
	comments    store.CommentStore
	submissions *services.SubmissionService
}

func NewCommunityHandler() *CommunityHandler {
	posts := store.NewPostStore()
	comments := store.NewCommentStore()
	return &CommunityHandler{
		posts:    posts,
		comments: comments,
		submissions: services.NewSubmissionService(
			services.GetModerationService(),
			services.GetSupportService(),
			posts,
			comments,
		),
	}
}

// List returns community posts newest first, paginated. The shared first
// pages are cached briefly; the "mine" view is always fresh.
func (h *CommunityHandler) List(c *gin.Context) {
	if c.Query("mine") == "1" {
		user := currentUser(c)
		if user == nil {
			fail(c, http.StatusUnauthorized, "authentication required")
			return
		}
		posts, err := h.posts.ListByUser(user.ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, genericFailure)
			return
		}
		c.JSON(http.StatusOK, gin.H{"posts": posts})
		return
	}

	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf("community:posts:page:%d", page)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	perPage := 30
	offset := (page - 1) * perPage

	total, err := h.posts.Count()
	if err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	posts, err := h.posts.List(perPage, offset)
	if err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	data := gin.H{
		"posts":        posts,
		"current_page": page,
		"total_pages":  totalPages,
	}
	utils.GetCache().Set(cacheKey, data, 1*time.Minute)

	c.JSON(http.StatusOK, data)
}

// Detail returns a post with its rendered content and the full comment
// thread. The displayed total is the flat comment count, nested replies
// included.
func (h *CommunityHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")

	cacheKey := "community:post:" + pid
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	post, err := h.posts.GetByPid(pid)
	if err != nil {
		fail(c, http.StatusNotFound, "post not found")
		return
	}

	flat, err := h.comments.ListByPost(post.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, genericFailure)
		return
	}

	tree := services.BuildCommentTree(flat)
	renderThread(tree)

	data := gin.H{
		"post":          post,
		"content_html":  utils.RenderMarkdown(post.Content),
		"comments":      tree,
		"comment_count": len(flat),
	}
	utils.GetCache().Set(cacheKey, data, 1*time.Minute)

	c.JSON(http.StatusOK, data)
}

// renderThread fills ContentHTML on every node of the reply tree.
func renderThread(nodes []*services.CommentNode) {
	for _, n := range nodes {
		n.ContentHTML = utils.RenderMarkdown(n.Comment.Content)
		renderThread(n.Children)
	}
}

type postRequest struct {
	Content     string   `json:"content" binding:"required"`
	DisplayName string   `json:"display_name"`
	Tags        []string `json:"tags"`
}

// CreatePost accepts a community post from a signed-in or anonymous visitor
// and runs it through the submission flow.
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}

	sub := services.PostSubmission{
		DisplayName: req.DisplayName,
		Content:     req.Content,
		Tags:        req.Tags,
	}
	if user := currentUser(c); user != nil {
		sub.UserID = &user.ID
		if sub.DisplayName == "" {
			sub.DisplayName = user.DisplayName
		}
	}

	result, err := h.submissions.SubmitPost(c.Request.Context(), sub)
	h.respondSubmission(c, result, err)
}

type confirmRequest struct {
	Token string `json:"token" binding:"required"`
}

// ConfirmPost persists a warned post after the explicit "post anyway"
// choice.
func (h *CommunityHandler) ConfirmPost(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "token is required")
		return
	}

	result, err := h.submissions.ConfirmPost(req.Token)
	h.respondSubmission(c, result, err)
}

type commentRequest struct {
	Content     string `json:"content" binding:"required"`
	DisplayName string `json:"display_name"`
	ParentID    *uint  `json:"parent_id"`
}

// CreateComment accepts a reply on a post. Requires a signed-in user.
func (h *CommunityHandler) CreateComment(c *gin.Context) {
	user := currentUser(c)
	pid := c.Param("pid")

	post, err := h.posts.GetByPid(pid)
	if err != nil {
		fail(c, http.StatusNotFound, "post not found")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = user.DisplayName
	}

	result, err := h.submissions.SubmitComment(c.Request.Context(), services.CommentSubmission{
		UserID:      user.ID,
		DisplayName: displayName,
		Content:     req.Content,
		Post:        post,
		ParentID:    req.ParentID,
	})
	h.respondSubmission(c, result, err)
}

// ConfirmComment persists a warned comment after the explicit override.
func (h *CommunityHandler) ConfirmComment(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "token is required")
		return
	}

	result, err := h.submissions.ConfirmComment(req.Token)
	h.respondSubmission(c, result, err)
}

// respondSubmission maps a submission result onto the wire. Blocked,
// rejected and warned are normal outcomes, not errors; only persistence
// failures surface as the generic failure notice.
func (h *CommunityHandler) respondSubmission(c *gin.Context, result *services.SubmissionResult, err error) {
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			fail(c, http.StatusBadRequest, "content cannot be empty")
		case errors.Is(err, services.ErrOverrideExpired):
			fail(c, http.StatusGone, "this submission has expired, please try again")
		case errors.Is(err, services.ErrParentMismatch):
			fail(c, http.StatusBadRequest, "the comment you are replying to does not belong to this post")
		default:
			fail(c, http.StatusInternalServerError, genericFailure)
		}
		return
	}

	if result.Outcome == services.OutcomePersisted {
		h.invalidate(result)
		c.JSON(http.StatusCreated, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// invalidate drops the cached views a successful write made stale. The
// result always carries the post (the new one, or the parent of a new
// comment), so the detail key can be derived directly. Only the first list
// page is dropped; deeper pages ride out their short TTL.
func (h *CommunityHandler) invalidate(result *services.SubmissionResult) {
	cache := utils.GetCache()
	cache.Delete("community:posts:page:1")
	if result.Post != nil {
		cache.Delete("community:post:" + result.Post.Pid)
	}
}
