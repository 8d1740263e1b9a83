package handlers

import (
	"github.com/gin-gonic/gin"
)

// NewRouter registers every route of the API on a new engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Admin interface assets
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", h.Info)
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
		admin.POST("/import", h.ImportFixture)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/animals", h.ListAnimals)
		api.GET("/tasks", h.ListTasks)
		api.GET("/treatments", h.ListTreatments)
		api.POST("/validate", h.ValidateInput)
		api.POST("/schedule", h.ScheduleJSON)
		api.POST("/schedule/text", h.ScheduleText)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
