package controllers

import (
	"net/http"

	"craftedbyher/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HubManagerLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Email and password are required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Managers.Login(ctx, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Login success",
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"manager":   res.Manager,
	})
}

func (h *Handler) HubManagerLogout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token required"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Managers.Logout(ctx, token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout success"})
}

func (h *Handler) HubManagerProfile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	m, err := h.Managers.Profile(ctx, currentManager(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", m)
}
