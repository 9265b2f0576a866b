package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/havenlist/estate-api/internal/auth"
	"github.com/havenlist/estate-api/internal/config"
	"github.com/havenlist/estate-api/internal/handler"
	"github.com/havenlist/estate-api/internal/middleware"
)

// Handlers collects every handler the router wires up.
type Handlers struct {
	Auth          *handler.AuthHandler
	AdminAuth     *handler.AdminAuthHandler
	Property      *handler.PropertyHandler
	OwnerProperty *handler.OwnerPropertyHandler
	Like          *handler.LikeHandler
	AdminProperty *handler.AdminPropertyHandler
}

// Register wires all routes onto the Echo instance.
//
// The rate limiter applies to everything.  The response cache wraps the
// search read path; on gated routes it is registered per route so it runs
// inside the gate, meaning a cache HIT still requires a valid credential.
func Register(e *echo.Echo, h Handlers, codec *auth.Codec, rdb *redis.Client) {
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	e.Use(rl)

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e.GET("/healthz", handler.Health)

	// Unauthenticated auth surface.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	e.POST("/v1/admin/auth/login", h.AdminAuth.Login)

	// End-user surface behind the user gate.
	user := e.Group("/v1", middleware.RequireUser(codec))
	user.GET("/me", h.Auth.Me)
	user.GET("/properties", h.Property.List, cacheMW)
	user.GET("/properties/:id", h.Property.Get, cacheMW)
	user.POST("/properties", h.OwnerProperty.Create)
	user.PUT("/properties/:id", h.OwnerProperty.Update)
	user.DELETE("/properties/:id", h.OwnerProperty.Delete)
	user.POST("/properties/:id/documents", h.OwnerProperty.AttachDocument)
	user.GET("/properties/:id/documents", h.OwnerProperty.ListDocuments)
	user.POST("/properties/:id/like", h.Like.Like)

	// Admin console behind the admin gate.
	admin := e.Group("/v1/admin", middleware.RequireAdmin(codec))
	admin.GET("/properties", h.AdminProperty.List)
	admin.PATCH("/properties/:id/review", h.AdminProperty.Review,
		middleware.RequirePermission("property:review"))
}
