package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetSellerOrders(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := h.Orders.SellerOrders(ctx, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", orders)
}

// MoveToHub hands an order to a hub. The body may name the hub; otherwise the
// seller's district decides.
func (h *Handler) MoveToHub(c *gin.Context) {
	var body struct {
		HubID string `json:"hubId"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, "Invalid request body")
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.MoveToSellerHub(ctx, userID(c), c.Param("id"), body.HubID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order moved to "+order.HubTracking.SellerHubName, order)
}
