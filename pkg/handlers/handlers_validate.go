package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/shelter-scheduler-go/pkg/database"
	"github.com/arnavshah/shelter-scheduler-go/pkg/scheduler"
)

// ValidateInput checks a posted fixture, or the stored records when the body is empty,
// and reports the candidate counts without allocating anything
func (h *Handler) ValidateInput(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	var inv *scheduler.Inventory
	if len(body) == 0 {
		inv, err = scheduler.New(h.Store, scheduler.WithLogger(h.Logger)).Inspect(c.Request.Context())
	} else {
		var f *database.Fixture
		if f, err = database.ParseFixture(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
			return
		}
		var catalog *scheduler.Catalog
		if catalog, err = f.Catalog(); err == nil {
			inv, err = catalog.Inventory()
		}
	}

	if err != nil {
		if status := errorStatus(err); status != http.StatusUnprocessableEntity {
			c.JSON(status, gin.H{"valid": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "stats": inv})
}
