package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetWishlist(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := h.Wishlist.Get(ctx, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": products, "count": len(products)})
}

func (h *Handler) AddToWishlist(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Wishlist.Add(ctx, userID(c), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product added to wishlist"})
}

func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Wishlist.Remove(ctx, userID(c), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist"})
}

func (h *Handler) CheckWishlist(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ok, err := h.Wishlist.Contains(ctx, userID(c), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWishlist": ok})
}

func (h *Handler) ClearWishlist(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Wishlist.Clear(ctx, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
}
