// Package router registers the routes of the reference server.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/medreq/internal/apiserver/handler"
	"github.com/kart-io/medreq/pkg/middleware"
)

// Prefix is the path every API route lives under.
const Prefix = "/api"

// Register registers the API routes on r.
func Register(r *gin.Engine, h *handler.Handler, tokens middleware.Verifier) {
	logger.Info("Registering API routes...")

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group(Prefix)

	// Public
	auth := apiGroup.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}

	// Protected
	authed := apiGroup.Group("", middleware.Auth(tokens))
	{
		authed.GET("/users/:id", h.Users.Get)
		authed.PUT("/users/:id", h.Users.Update)

		authed.GET("/medicines", h.Medicines.List)

		authed.GET("/requests", h.Requests.List)
		authed.POST("/requests", h.Requests.Create)
	}
}

// New creates the engine with the standard middleware stack and the API
// routes.
func New(h *handler.Handler, tokens middleware.Verifier, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Logger(),
		middleware.CORS(allowOrigins),
	)
	Register(r, h, tokens)
	return r
}
