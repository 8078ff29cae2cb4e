// Package http exposes the appointment service over the fixed
// /api/rendezvous route surface.
package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the contract routes registered.
// The path set is frozen; renaming or re-nesting any of these breaks the
// existing frontend.
func NewRouter(h *RendezVousHandler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api/rendezvous")
	{
		api.POST("", h.Create)
		api.GET("", h.List)
		api.POST("/client", h.ListByClient)
		api.GET("/count-by-date", h.CountByDate)
		api.GET("/admin/:id", h.ListByAdmin)
		api.GET("/availability/:adminId", h.AvailabilityByAdmin)
		api.GET("/:id", h.Get)
		api.PUT("/:id", h.Update)
		api.PUT("/status/:id", h.UpdateStatus)
		api.DELETE("/:id", h.Delete)
	}

	return r
}
