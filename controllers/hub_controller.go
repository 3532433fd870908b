package controllers

import (
	"net/http"
	"strconv"

	"craftedbyher/geo"
	"craftedbyher/models"
	"craftedbyher/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetHubs(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	hubs, err := h.Hubs.ActiveHubs(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", hubs)
}

func (h *Handler) GetDistricts(c *gin.Context) {
	respond(c, http.StatusOK, "Fetch success", geo.Districts)
}

func (h *Handler) GetHubsByDistrict(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	hubs, err := h.Hubs.HubsInDistrict(ctx, c.Param("district"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", hubs)
}

// GetNearestHubs ranks active hubs by distance from ?lat=&lng=.
func (h *Handler) GetNearestHubs(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		badRequest(c, "lat and lng query parameters are required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	hubs, err := h.Hubs.Nearest(ctx, models.Coordinates{Latitude: lat, Longitude: lng})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", hubs)
}

func (h *Handler) SaveSellerLocation(c *gin.Context) {
	var input services.SellerLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	loc, err := h.Hubs.SaveSellerLocation(ctx, userID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Location saved", loc)
}

func (h *Handler) GetHubsAdmin(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	hubs, err := h.Hubs.All(ctx, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", hubs)
}

func (h *Handler) CreateHub(c *gin.Context) {
	var input services.CreateHubInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	hub, err := h.Hubs.Create(ctx, userID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Hub created", hub)
}

func (h *Handler) UpdateHubStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Status is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Hubs.SetStatus(ctx, c.Param("hubId"), body.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hub status updated"})
}

func (h *Handler) AssignHubManager(c *gin.Context) {
	var body struct {
		ManagerID string `json:"managerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "managerId is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Hubs.AssignManager(ctx, c.Param("hubId"), body.ManagerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hub manager assigned"})
}

func (h *Handler) GetHubManagers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	managers, err := h.Managers.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Fetch success", managers)
}

func (h *Handler) CreateHubManager(c *gin.Context) {
	var input services.CreateManagerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	m, err := h.Managers.Create(ctx, userID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Hub manager created", m)
}

func (h *Handler) UpdateHubManagerStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Status is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Managers.SetStatus(ctx, c.Param("managerId"), body.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hub manager status updated"})
}

// CheckPincode tells a shopper whether their postal code is served.
func (h *Handler) CheckPincode(c *gin.Context) {
	var input struct {
		Pincode string `json:"pincode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Hubs.CheckPincode(ctx, input.Pincode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": res.Available, "message": res.Message, "data": res})
}
