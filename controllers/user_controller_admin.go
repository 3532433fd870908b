package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UpdateUserRole(c *gin.Context) {
	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Role is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	u, err := h.Accounts.SetRole(ctx, userID(c), c.Param("uid"), input.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User role updated", u)
}

func (h *Handler) UpdateUserStatus(c *gin.Context) {
	var input struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "isActive is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	u, err := h.Accounts.SetActive(ctx, userID(c), c.Param("uid"), *input.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "User activated"
	if !*input.IsActive {
		msg = "User deactivated"
	}
	respond(c, http.StatusOK, msg, u)
}
