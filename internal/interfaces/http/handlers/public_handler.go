package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/interfaces/http/response"
	"stremini.backend/internal/usecases"
)

// PublicHandler serves the anonymous marketing-site endpoints
type PublicHandler struct {
	signup  *usecases.WaitlistSignupUsecase
	content *usecases.ContentUsecase
}

func NewPublicHandler(signup *usecases.WaitlistSignupUsecase, content *usecases.ContentUsecase) *PublicHandler {
	return &PublicHandler{signup: signup, content: content}
}

// JoinWaitlist adds a pending waitlist entry and sends the confirmation email.
// POST /api/v1/waitlist
func (h *PublicHandler) JoinWaitlist(c *gin.Context) {
	var input entities.JoinWaitlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	entry, err := h.signup.Join(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "You're on the waitlist",
		"entry":   entry,
	})
}

// ListTeams returns active team members.
// GET /api/v1/teams
func (h *PublicHandler) ListTeams(c *gin.Context) {
	items, err := h.content.ListTeam(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// ListBlogPosts returns published posts newest first.
// GET /api/v1/blog?page=1&limit=10
func (h *PublicHandler) ListBlogPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, meta, err := h.content.ListBlogPosts(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items": items,
		"meta":  meta,
	})
}

// GetBlogPost returns one published post.
// GET /api/v1/blog/:slug
func (h *PublicHandler) GetBlogPost(c *gin.Context) {
	post, err := h.content.GetBlogPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": post})
}
