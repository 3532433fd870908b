package controllers

import (
	"net/http"

	"craftedbyher/models"
	"craftedbyher/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ApplyToSell(c *gin.Context) {
	var input services.ApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	app, err := h.Applications.Apply(ctx, currentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Application submitted successfully", app)
}

func (h *Handler) GetMyApplication(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	app, err := h.Applications.Mine(ctx, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", app)
}

func (h *Handler) GetApplicationsAdmin(c *gin.Context) {
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Applications.List(ctx, models.ApplicationQuery{Status: c.Query("status"), Page: page, Limit: limit})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", res)
}

func (h *Handler) GetApplicationAdmin(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	app, err := h.Applications.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", app)
}

// ReviewApplication sets an application's status; approving makes the applicant a seller.
func (h *Handler) ReviewApplication(c *gin.Context) {
	var input services.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	app, err := h.Applications.Review(ctx, userID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Application status updated", app)
}
