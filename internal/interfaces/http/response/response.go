package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "stremini.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrBadRequest), errors.Is(err, domainerrors.ErrInvalidInput),
		errors.Is(err, domainerrors.ErrModalClosed):
		return domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeBadRequest, err.Error(), err)
	case errors.Is(err, domainerrors.ErrUnauthorized), errors.Is(err, domainerrors.ErrInvalidCredentials),
		errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden(err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyExists), errors.Is(err, domainerrors.ErrSaveInFlight):
		return domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeConflict, err.Error(), err)
	case errors.Is(err, domainerrors.ErrConfiguration):
		return domainerrors.ConfigurationError()
	}
	// Default to Internal Server Error if not an AppError
	return domainerrors.InternalError(err)
}
