package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stremini.backend/internal/interfaces/http/handlers"
	"stremini.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "stremini-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	publicHandler     *handlers.PublicHandler
	dashboardHandler  *handlers.DashboardHandler
	invitationHandler *handlers.InvitationHandler
	sessionMiddleware gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins string) {
	allowed := map[string]bool{}
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed["*"] || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", strings.Join([]string{
			"Content-Type",
			middleware.SessionHeader,
			middleware.RequestIDHeader,
			middleware.IdempotencyHeader,
		}, ", "))
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, "+middleware.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/session", d.authHandler.Session)
		}

		// Marketing site routes (public)
		v1.POST("/waitlist", middleware.IdempotencyMiddleware(), d.publicHandler.JoinWaitlist)
		v1.GET("/teams", d.publicHandler.ListTeams)
		blog := v1.Group("/blog")
		{
			blog.GET("", d.publicHandler.ListBlogPosts)
			blog.GET("/:slug", d.publicHandler.GetBlogPost)
		}

		// Admin routes (session required)
		admin := v1.Group("/admin")
		admin.Use(d.sessionMiddleware)
		{
			admin.GET("/dashboard", d.dashboardHandler.Get)
			admin.PUT("/dashboard/filters", d.dashboardHandler.SetFilters)
			admin.POST("/logout", d.dashboardHandler.Logout)

			admin.GET("/waitlist/export", d.dashboardHandler.ExportWaitlist)
			admin.POST("/waitlist/:id/approve", d.dashboardHandler.ApproveEntry)
			admin.POST("/waitlist/:id/remove", d.dashboardHandler.RemoveEntry)
			admin.DELETE("/waitlist/:id", d.dashboardHandler.DeleteEntry)

			admin.POST("/team/modal", d.dashboardHandler.OpenTeamModal)
			admin.PUT("/team/modal", d.dashboardHandler.SaveTeamModal)
			admin.DELETE("/team/modal", d.dashboardHandler.CancelTeamModal)
			admin.DELETE("/team/:id", d.dashboardHandler.DeleteTeamMember)

			admin.POST("/blog/modal", d.dashboardHandler.OpenBlogModal)
			admin.PUT("/blog/modal", d.dashboardHandler.SaveBlogModal)
			admin.DELETE("/blog/modal", d.dashboardHandler.CancelBlogModal)
			admin.POST("/blog/:id/toggle-publish", d.dashboardHandler.TogglePublish)
			admin.DELETE("/blog/:id", d.dashboardHandler.DeleteBlogPost)

			admin.POST("/invitations", middleware.IdempotencyMiddleware(), d.invitationHandler.Invite)
		}
	}
}
