package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"optiontracker/internal/service"
)

type AuthHandler struct {
	Auth *service.AuthService
}

func (h *AuthHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/auth")
	group.POST("/register", h.register)
	group.POST("/login", h.login)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Register a user
// @Tags auth
// @Accept json
// @Param body body credentialsRequest true "credentials"
// @Success 200 {object} map[string]any
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	user, err := h.Auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"email": user.Email}, nil)
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Param body body credentialsRequest true "credentials"
// @Success 200 {object} map[string]any
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	user, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"email": user.Email}, nil)
}
