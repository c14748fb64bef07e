package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/interfaces/http/middleware"
	"stremini.backend/internal/interfaces/http/response"
	"stremini.backend/internal/usecases"
)

// AuthHandler handles admin sign-in endpoints
type AuthHandler struct {
	authUsecase  *usecases.AuthUsecase
	cookieMaxAge int
	secure       bool
}

// NewAuthHandler creates a new auth handler. The session cookie lives as long as the session.
func NewAuthHandler(authUsecase *usecases.AuthUsecase, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		cookieMaxAge: int(sessionTTL / time.Second),
		secure:       secureCookie,
	}
}

// Login handles admin sign-in
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	session, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.ID, h.cookieMaxAge, "/", "", h.secure, true)
	response.Success(c, http.StatusOK, gin.H{
		"session": session,
	})
}

// Logout ends the session and tells the client to reload
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.SessionIDFromRequest(c)
	if err := h.authUsecase.Logout(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secure, true)
	response.Success(c, http.StatusOK, gin.H{
		"message": "Signed out",
		"reload":  true,
	})
}

// Session returns the current session
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := h.authUsecase.CurrentSession(c.Request.Context(), middleware.SessionIDFromRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": session})
}
