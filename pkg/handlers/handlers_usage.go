package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnavshah/shelter-scheduler-go/pkg/database"
)

// RecordUsage adds one schedule run of the calling key to today's usage row
func (h *Handler) RecordUsage(c *gin.Context, itemCount, volunteerCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	// single-query upsert, supported by both postgres and sqlite
	err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":    gorm.Expr("request_count + ?", 1),
			"total_items":      gorm.Expr("total_items + ?", itemCount),
			"total_volunteers": gorm.Expr("total_volunteers + ?", volunteerCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:           apiKey.ID,
		Date:            today(),
		RequestCount:    1,
		TotalItems:      itemCount,
		TotalVolunteers: volunteerCount,
	}).Error
	if err != nil {
		h.Logger.Warn("could not record usage", zap.Uint("key_id", apiKey.ID), zap.Error(err))
	}
}

func (h *Handler) usageHistory(keyID any) ([]database.APIUsage, error) {
	var usage []database.APIUsage
	err := h.DB.Where("key_id = ?", keyID).Order("date desc").Limit(30).Find(&usage).Error
	return usage, err
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	usage, err := h.usageHistory(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	usage, err := h.usageHistory(apiKey.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalItems, totalVolunteers int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalItems += int64(u.TotalItems)
		totalVolunteers += int64(u.TotalVolunteers)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests":   totalRequests,
			"items":      totalItems,
			"volunteers": totalVolunteers,
		},
	})
}
