package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login provisions an account for a first-seen email and returns a token
// pair. The password field is carried but not verified; a real credential
// check is the job of the external identity provider this stands in for.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	pair, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token into a new access+refresh pair. Any
// defect (wrong kind, expired, bad signature, account gone) is a uniform
// 401.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.BindJSON(&req); err != nil || req.RefreshToken == "" {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token required"})
		return
	}

	pair, err := h.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}
