package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ldiadam/kitabooking/internal/config"
	"github.com/ldiadam/kitabooking/internal/handler"
	"github.com/ldiadam/kitabooking/internal/middleware"
)

// RegisterPublic registers the unauthenticated browse endpoints: venue
// types, venues, slots and day availability.  These are the hot read
// paths, so the Redis response cache is applied here and nowhere else.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.NewRedisCache(cacheCfg, rdb))

	g.GET("/venue-types", p.GetVenueTypes)
	g.GET("/venues", p.GetVenues)
	g.GET("/venues/:id", p.GetVenue)
	g.GET("/venues/:id/slots", p.GetVenueSlots)
	// Availability answers change the moment someone books; the short
	// cache TTL configured for this middleware keeps staleness bounded.
	g.GET("/venues/:id/availability", p.GetAvailability)
}
