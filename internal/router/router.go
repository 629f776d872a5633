package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"            // Echo web framework handles routing
	echomw "github.com/labstack/echo/v4/middleware" // built-in middleware (CORS)

	"github.com/iliyamo/event-checkin/internal/config"     // app configuration (admin key)
	"github.com/iliyamo/event-checkin/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/event-checkin/internal/middleware" // admin key gate and rate limiter
)

// Register wires every route of the service onto the provided Echo
// instance.  The public surface is the check-in form endpoint plus the
// static pages; everything under /api/admin sits behind the X-Admin-Key
// gate.  The limiter middleware is applied to /checkin only, so a misbehaving
// kiosk cannot flood the log.
func Register(e *echo.Echo, cfg config.Config, ch *handler.CheckinHandler, ah *handler.AdminHandler, limiter echo.MiddlewareFunc) {
	// The check-in page may be served from another host during the event,
	// so CORS is fully permissive.
	e.Use(echomw.CORS())

	// Public check-in endpoint.
	e.POST("/checkin", ch.Checkin, limiter)

	// Admin API, gated by the pre-shared key header.
	admin := e.Group("/api/admin", middleware.AdminKey(cfg.AdminKey))
	admin.GET("/checkins", ah.ListCheckins)
	admin.GET("/guests", ah.ListGuests)
	admin.POST("/guest", ah.CreateGuest)
	admin.PUT("/guest/:name", ah.UpdateGuest)
	admin.DELETE("/guest/:name", ah.DeleteGuest)

	// Static pages for attendees and staff.
	e.File("/", "web/index.html")
	e.File("/admin", "web/admin.html")
	e.Static("/static", "web/static")

	// Liveness probes.
	e.GET("/health", handler.Health)
	e.GET("/ping", handler.Ping)
	e.HEAD("/ping", handler.Ping)
}
