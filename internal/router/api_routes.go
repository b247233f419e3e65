package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/item-sharing-service/internal/config"
	"github.com/iliyamo/item-sharing-service/internal/handler"
	"github.com/iliyamo/item-sharing-service/internal/middleware"
)

// SharingHandlers bundles the handlers of the sharing API.
type SharingHandlers struct {
	Bookings *handler.BookingHandler
	Items    *handler.ItemHandler
	Users    *handler.UserHandler
	Requests *handler.RequestHandler
}

// RegisterSharing registers the item-sharing API. Callers identify
// themselves with the X-Sharer-User-Id header (or a Bearer token);
// the identity middleware resolves it once for the whole group. The
// search and request-browsing endpoints sit behind the Redis response
// cache since they are read-heavy and tolerate short staleness.
func RegisterSharing(e *echo.Echo, h SharingHandlers, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("", middleware.Identity(jwtSecret))

	cache := middleware.NewRedisCache(cacheCfg, rdb)

	// Booking lifecycle. Echo matches the static /owner segment
	// before the :bookingId parameter.
	g.POST("/bookings", h.Bookings.Create)
	g.GET("/bookings", h.Bookings.ListForBooker)
	g.GET("/bookings/owner", h.Bookings.ListForOwner)
	g.GET("/bookings/:bookingId", h.Bookings.GetByID)
	g.PATCH("/bookings/:bookingId", h.Bookings.SetApproval)

	// Item catalog.
	g.POST("/items", h.Items.Create)
	g.GET("/items", h.Items.ListOwn)
	g.GET("/items/search", h.Items.Search, cache)
	g.GET("/items/:itemId", h.Items.GetByID)
	g.PATCH("/items/:itemId", h.Items.Update)
	g.POST("/items/:itemId/comment", h.Items.AddComment)

	// User management.
	g.POST("/users", h.Users.Create)
	g.GET("/users", h.Users.List)
	g.GET("/users/:userId", h.Users.GetByID)
	g.PATCH("/users/:userId", h.Users.Update)
	g.DELETE("/users/:userId", h.Users.Delete)

	// Item requests.
	g.POST("/requests", h.Requests.Create)
	g.GET("/requests", h.Requests.ListOwn)
	g.GET("/requests/all", h.Requests.ListAll, cache)
	g.GET("/requests/:requestId", h.Requests.GetByID)
}
