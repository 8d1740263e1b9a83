package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/shelter-scheduler-go/pkg/database"
)

// ListAnimals returns the stored animals
func (h *Handler) ListAnimals(c *gin.Context) {
	rows, err := h.Store.ListAnimals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list animals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"animals": rows})
}

// ListTasks returns the stored tasks
func (h *Handler) ListTasks(c *gin.Context) {
	rows, err := h.Store.ListTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": rows})
}

// ListTreatments returns the stored treatments
func (h *Handler) ListTreatments(c *gin.Context) {
	rows, err := h.Store.ListTreatments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list treatments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"treatments": rows})
}

// ImportFixture upserts the posted YAML or JSON fixture
func (h *Handler) ImportFixture(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fixture body is required"})
		return
	}

	f, err := database.ParseFixture(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.Seed(c.Request.Context(), h.DB, f); err != nil {
		h.Logger.Warn("fixture import rejected", zap.Error(err))
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.Logger.Info("fixture imported",
		zap.String("by", c.GetString("username")),
		zap.Int("animals", len(f.Animals)),
		zap.Int("tasks", len(f.Tasks)),
		zap.Int("treatments", len(f.Treatments)))
	c.JSON(http.StatusOK, gin.H{
		"message":    "Fixture imported",
		"animals":    len(f.Animals),
		"tasks":      len(f.Tasks),
		"treatments": len(f.Treatments),
	})
}
