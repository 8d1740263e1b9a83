package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
	"github.com/arnavshah/shelter-scheduler-go/pkg/scheduler"
)

func foxCatalog(t *testing.T) *scheduler.Catalog {
	t.Helper()
	fox, err := models.NewAnimal(1, "Sly", "fox")
	require.NoError(t, err)
	bandage, err := models.NewTask(7, "Rebandage leg", 60, 1)
	require.NoError(t, err)
	var treatments []*models.Treatment
	for _, id := range []int{12, 13} {
		tr, err := models.NewTreatment(id, 1, 7, 0)
		require.NoError(t, err)
		treatments = append(treatments, tr)
	}
	c, err := scheduler.NewCatalog([]*models.Animal{fox}, []models.Task{bandage}, treatments)
	require.NoError(t, err)
	return c
}

func TestObserve(t *testing.T) {
	r := NewRecorder()

	plan := scheduler.NewPlanDecider(models.ScheduleRequest{})
	result, err := scheduler.New(nil).Schedule(context.Background(), foxCatalog(t), plan)
	require.NoError(t, err)

	r.Observe(result, 20*time.Millisecond)
	r.Observe(nil, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("partial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.runs.WithLabelValues("complete")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.items.WithLabelValues("placed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.items.WithLabelValues("unresolved")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.waivers))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
}

func TestObserve_Volunteer(t *testing.T) {
	r := NewRecorder()

	plan := scheduler.NewPlanDecider(models.ScheduleRequest{ApproveVolunteers: true})
	result, err := scheduler.New(nil).Schedule(context.Background(), foxCatalog(t), plan)
	require.NoError(t, err)
	r.Observe(result, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("complete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.waivers))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.items.WithLabelValues("placed")))
}

func TestHandler(t *testing.T) {
	r := NewRecorder()
	r.Observe(nil, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `shelter_schedule_runs_total{outcome="failed"} 1`)
	assert.Contains(t, rec.Body.String(), "shelter_schedule_run_duration_seconds_bucket")
}
