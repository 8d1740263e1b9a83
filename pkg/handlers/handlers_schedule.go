package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
	"github.com/arnavshah/shelter-scheduler-go/pkg/scheduler"
)

// errorStatus maps domain failures to 422 and everything else to 500
func errorStatus(err error) int {
	if errors.Is(err, models.ErrValidation) || errors.Is(err, scheduler.ErrDataIntegrity) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// runSchedule binds the optional decision plan and performs one run on the stored records
func (h *Handler) runSchedule(c *gin.Context) (*scheduler.Result, bool) {
	var plan models.ScheduleRequest
	if err := c.ShouldBindJSON(&plan); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	start := time.Now()
	s := scheduler.New(h.Store, scheduler.WithLogger(h.Logger))
	result, err := s.Run(c.Request.Context(), scheduler.NewPlanDecider(plan))
	h.Metrics.Observe(result, time.Since(start))
	if err != nil {
		h.Logger.Error("schedule run failed", zap.Error(err))
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return nil, false
	}

	h.RecordUsage(c, result.Placed(), result.Volunteers)
	return result, true
}

// ScheduleJSON runs the scheduler and returns the structured timetable
func (h *Handler) ScheduleJSON(c *gin.Context) {
	result, ok := h.runSchedule(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result.Response())
}

// ScheduleText runs the scheduler and returns the rendered timetable
func (h *Handler) ScheduleText(c *gin.Context) {
	result, ok := h.runSchedule(c)
	if !ok {
		return
	}
	c.Header("X-Run-ID", result.RunID)
	c.Header("X-Unresolved-Items", strconv.Itoa(len(result.Unresolved)))
	c.String(http.StatusOK, result.Text)
}
