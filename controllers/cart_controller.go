package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddToCart(c *gin.Context) {
	var body struct {
		ProductID string `json:"productId" binding:"required"`
		Weight    string `json:"weight"`
		Quantity  int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Cart.Add(ctx, userID(c), body.ProductID, body.Weight, body.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

func (h *Handler) GetCart(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	cart, err := h.Cart.Get(ctx, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", cart)
}

func (h *Handler) UpdateCart(c *gin.Context) {
	var body struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Cart.Update(ctx, userID(c), c.Param("productId"), *body.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Cart.Remove(ctx, userID(c), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}
