package controllers

import (
	"net/http"

	"craftedbyher/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetProductsAdmin(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := h.Products.ByApproval(ctx, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", products)
}

func (h *Handler) ApproveProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Products.Approve(ctx, userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product approved"})
}

func (h *Handler) RejectProduct(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Rejection reason is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Products.Reject(ctx, userID(c), c.Param("id"), body.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product rejected"})
}

func (h *Handler) CreateSellerProduct(c *gin.Context) {
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.Products.Create(ctx, currentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Product submitted for approval", product)
}

func (h *Handler) GetSellerProducts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := h.Products.BySeller(ctx, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", products)
}
