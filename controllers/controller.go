// Package controllers holds the gin handlers. Each handler binds input, calls one
// service operation and renders {"message", "data"} or {"error"}.
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"craftedbyher/logging"
	"craftedbyher/middleware"
	"craftedbyher/models"
	"craftedbyher/services"
	"craftedbyher/workflow"

	"github.com/gin-gonic/gin"
)

var logger = logging.NewPackageLogger("controllers")

const requestTimeout = 10 * time.Second

type Handler struct {
	Orders       *services.OrderService
	Products     *services.ProductService
	Hubs         *services.HubService
	Managers     *services.ManagerService
	Inbox        *services.Inbox
	Wishlist     *services.WishlistService
	Cart         *services.CartService
	Applications *services.SellerApplicationService
	Accounts     *services.AccountService
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

func currentUser(c *gin.Context) models.User {
	if u, ok := middleware.CurrentUser(c); ok {
		return *u
	}
	return models.User{UID: userID(c), Role: c.GetString(middleware.RoleKey)}
}

func currentManager(c *gin.Context) services.Manager {
	m, ok := middleware.CurrentManager(c)
	if !ok {
		return services.Manager{}
	}
	return services.Manager{ID: m.ManagerID, HubID: m.HubID}
}

func pageParams(c *gin.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	return page, limit
}

func orderFilter(c *gin.Context) models.OrderFilter {
	page, limit := pageParams(c)
	f := models.OrderFilter{
		HubID:    c.Query("hubId"),
		Location: c.Query("location"),
		Page:     page,
		Limit:    limit,
	}
	if s := c.Query("status"); s != "" {
		for _, st := range strings.Split(s, ",") {
			if st = strings.TrimSpace(st); st != "" {
				f.Statuses = append(f.Statuses, st)
			}
		}
	}
	return f
}

func isOTPError(err error) bool {
	for _, target := range []error{
		workflow.ErrOTPMissing, workflow.ErrOTPUsed, workflow.ErrOTPExpired,
		workflow.ErrOTPMismatch, workflow.ErrOTPFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError maps service and workflow errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, workflow.ErrInvalidTransition),
		isOTPError(err):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, workflow.ErrOTPActive):
		status = http.StatusConflict
	default:
		logger.Error().Err(err).
			Str(logging.REQUEST, c.GetString(logging.REQUEST)).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"message": message, "data": data})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
