package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetProductsPublic(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := h.Products.Public(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.Products.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", product)
}

func (h *Handler) GetRecommendations(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.Products.Recommend(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"targetProduct":   rec.Target,
		"recommendations": rec.Recommendations,
		"source":          rec.Source,
	})
}
