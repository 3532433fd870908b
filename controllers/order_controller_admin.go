package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetOrdersAdmin(c *gin.Context) {
	f := orderFilter(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	orders, total, err := h.Orders.List(ctx, f)
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

func (h *Handler) GetOrderByIDAdmin(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", order)
}

func (h *Handler) ApproveOrder(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.Approve(ctx, userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order approved", order)
}

func (h *Handler) DispatchOrder(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.Dispatch(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order dispatched to customer hub", order)
}

// ApproveAndDispatch is the single "approve and move" action on the admin dashboard.
func (h *Handler) ApproveAndDispatch(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.ApproveAndDispatch(ctx, userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order approved and dispatched", order)
}

func (h *Handler) CancelOrderAdmin(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.AdminCancel(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order cancelled", order)
}

func (h *Handler) GetHubStatsAdmin(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.Orders.HubStats(ctx, c.Param("hubId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", stats)
}
