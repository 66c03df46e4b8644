package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"optiontracker/internal/repository"
	"optiontracker/internal/service"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// Fail maps well-known service and repository errors onto HTTP statuses.
func Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, service.ErrNoLegs),
		errors.Is(err, service.ErrInvalidLeg),
		errors.Is(err, service.ErrMissingExitPremium),
		errors.Is(err, service.ErrMissingCredentials):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrUserExists):
		Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidPassword):
		Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
