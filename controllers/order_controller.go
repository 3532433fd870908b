package controllers

import (
	"net/http"

	"craftedbyher/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid order payload")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.Create(ctx, userID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Order placed", order)
}

func (h *Handler) GetOrders(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := h.Orders.Mine(ctx, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.GetMine(ctx, userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", order)
}

func (h *Handler) TrackOrder(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.Orders.Tracking(ctx, userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", view)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.Cancel(ctx, userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order cancelled", order)
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	var input services.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid payment payload")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.Orders.RecordPayment(ctx, userID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Payment recorded", order)
}
