package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *AuthHandler,
	planHandler *PlanHandler,
	historyHandler *HistoryHandler,
	jwtSecret string,
	logger *zap.Logger,
	db *pgxpool.Pool,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c, 1*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// Planning works for anonymous sessions too; history requires a
	// logged-in user.
	session := r.Group("/")
	session.Use(SessionMiddleware(jwtSecret))
	{
		session.GET("/plan", planHandler.Snapshot)
		session.POST("/plan/start", planHandler.Start)
		session.POST("/plan/generate", planHandler.Generate)
		session.POST("/plan/reset", planHandler.Reset)
		session.POST("/plan/toggle", planHandler.Toggle)
		session.GET("/plan/layout", planHandler.Layout)
		session.GET("/plan/export", planHandler.Export)

		auth := session.Group("/")
		auth.Use(RequireAuth())
		{
			auth.GET("/me", authHandler.Me)
			auth.GET("/history", historyHandler.List)
			auth.DELETE("/history/:id", historyHandler.Delete)
			auth.POST("/history/:id/activate", historyHandler.Activate)
		}
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
