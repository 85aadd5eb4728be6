package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/tierlist-vote/internal/config"
	"github.com/iliyamo/tierlist-vote/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/tierlist-vote/internal/middleware" // import middleware for sessions, caching and rate limiting
)

// RegisterRoutes wires the whole HTTP surface onto the provided Echo
// instance. Read-only projections stay public so anyone can browse
// tierlists and tallies; every mutation requires a session. The Redis
// client may be nil, in which case caching and rate limiting silently
// become pass-throughs.
func RegisterRoutes(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, h *handler.TierlistHandler, rdb *redis.Client) {
	// Health endpoints used by load balancers and monitoring.
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)

	// Uploaded item images are served straight off the upload directory.
	e.Static("/static", cfg.UploadDir)

	// The OIDC dance happens before a session exists.
	e.GET("/auth/login", a.Login)
	e.GET("/auth/callback", a.Callback)

	ratelimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Public read-only projections. The item list and the vote tally are
	// the read-heavy endpoints, so they additionally sit behind the
	// response cache.
	pub := e.Group("", ratelimit)
	pub.GET("/tierlists", h.ListTierlists)
	pub.GET("/tierlists/:id", h.GetTierlist)
	pub.GET("/tierlists/:id/items", h.ListItems, cache)
	pub.GET("/tierlists/:id/votes", h.GetVotes, cache)

	// Everything that mutates state requires an authenticated session.
	authed := e.Group("", ratelimit, middleware.SessionAuth(cfg.SessionSecret))
	authed.GET("/auth/me", a.Me)
	authed.POST("/tierlists", h.CreateTierlist)
	authed.DELETE("/tierlists/:id", h.DeleteTierlist)
	authed.POST("/tierlists/:id/tiers", h.CreateTier)
	authed.PATCH("/tiers/:id", h.UpdateTier)
	authed.DELETE("/tiers/:id", h.DeleteTier)
	authed.POST("/tierlists/:id/items", h.CreateItem)
	authed.PATCH("/items/:id", h.MoveItem)
	authed.DELETE("/items/:id", h.DeleteItem)
	authed.POST("/items/:id/vote", h.CastVote)
}
