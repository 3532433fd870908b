package controllers

import (
	"net/http"

	"craftedbyher/models"

	"github.com/gin-gonic/gin"
)

// HubDashboard returns the manager's hub with its order counts. Central managers get
// network-wide counts and no hub.
func (h *Handler) HubDashboard(c *gin.Context) {
	m := currentManager(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.Orders.HubStats(ctx, m.HubID)
	if err != nil {
		respondError(c, err)
		return
	}
	var hub *models.Hub
	if m.HubID != "" && m.HubID != models.AllHubs {
		if hub, err = h.Hubs.Get(ctx, m.HubID); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "stats": stats, "hub": hub})
}

func (h *Handler) GetHubOrders(c *gin.Context) {
	f := orderFilter(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	orders, total, err := h.Orders.HubOrders(ctx, currentManager(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Fetch success",
		"data":    orders,
		"total":   total,
		"page":    f.Page,
		"limit":   f.Limit,
	})
}

func (h *Handler) MarkArrived(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.MarkArrived(ctx, currentManager(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order received at customer hub, pickup OTP sent", order)
}

func (h *Handler) RegenerateOTP(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.GenerateOTP(ctx, currentManager(c), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "New pickup OTP sent to customer",
		"orderNumber":  order.OrderNumber,
		"otpExpiresAt": order.HubTracking.OTPExpiresAt,
	})
}

func (h *Handler) VerifyPickupOTP(c *gin.Context) {
	var body struct {
		OTP string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "OTP is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.VerifyPickup(ctx, currentManager(c), c.Param("orderNumber"), body.OTP)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "OTP verified, order delivered", order)
}
