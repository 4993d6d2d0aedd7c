package app

import (
	"github.com/gin-gonic/gin"

	"github.com/loci-space/core/internal/middleware"
	"github.com/loci-space/core/internal/modules/auth/user"
	"github.com/loci-space/core/internal/modules/content/note"
	"github.com/loci-space/core/internal/modules/processing/ai"
	pkgredis "github.com/loci-space/core/internal/pkg/redis"
	"github.com/loci-space/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "loci-core",
		"version":  "1.0.0",
		"homepage": "https://github.com/loci-space/core",
	}
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, appInfo)
	})

	// OptionalAuth must resolve the user before the limiter so that
	// authenticated requests are exempt from it.
	r.Use(middleware.OptionalAuth())
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	api := r.Group("")

	noteSvc := note.NewService(a.db)
	aiSvc := ai.NewService(noteSvc, a.cfg.AI, ai.NewGateway(), a.logger)
	userSvc := user.NewService(a.db)

	note.NewHandler(noteSvc, aiSvc).RegisterRoutes(api, authMW)
	ai.NewHandler(aiSvc).RegisterRoutes(api, authMW)
	user.NewHandler(userSvc).RegisterRoutes(api, authMW)
}
