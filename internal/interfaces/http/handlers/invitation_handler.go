package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stremini.backend/internal/domain/entities"
	"stremini.backend/internal/interfaces/http/middleware"
	"stremini.backend/internal/interfaces/http/response"
	"stremini.backend/internal/usecases"
)

// InvitationHandler exposes the superadmin invitation workflow
type InvitationHandler struct {
	invitations *usecases.InvitationUsecase
}

func NewInvitationHandler(invitations *usecases.InvitationUsecase) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

// Invite grants roles to an email address, creating the identity when needed.
// Failures are reported in the result body, not as transport errors.
// POST /api/v1/admin/invitations
func (h *InvitationHandler) Invite(c *gin.Context) {
	var input entities.InviteUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Success(c, http.StatusBadRequest, entities.InviteResult{Error: err.Error()})
		return
	}

	result := h.invitations.InviteUser(c.Request.Context(), middleware.SessionIDFromRequest(c), input)
	status := http.StatusOK
	switch {
	case result.Success:
	case strings.HasPrefix(result.Error, "Unauthorized"):
		status = http.StatusForbidden
	default:
		status = http.StatusBadRequest
	}
	response.Success(c, status, result)
}
