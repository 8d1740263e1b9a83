package scheduler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

func TestRender_EmptyDay(t *testing.T) {
	c, err := NewCatalog(nil, nil, nil)
	require.NoError(t, err)

	var want strings.Builder
	for h := 0; h < models.HoursPerDay; h++ {
		fmt.Fprintf(&want, "Hour: %d\nEmpty\n\n", h)
	}
	assert.Equal(t, want.String(), Render(NewRunState().Timetable(), c))
}

func TestFormatItem(t *testing.T) {
	c := shelterCatalog(t)

	feeding := newItem(t, 1, models.FeedingTaskID, 0, 3, 5, models.NoTreatment)
	assert.Equal(t, fmt.Sprintf("%-30s%-25s%5d mins", "Sly", "Feeding", 5), FormatItem(feeding, c))

	medication := newItem(t, 4, medicationTaskID, 10, 2, 30, 11)
	medication.MarkNeedsVolunteer()
	assert.Equal(t, fmt.Sprintf("%-30s%-25s%5d mins", "Wile (+ Volunteer)", "Give medication", 30), FormatItem(medication, c))

	cleaning := newItem(t, 2, models.PorcupineCageCleaningTaskID, 0, 24, 10, models.NoTreatment)
	assert.Contains(t, FormatItem(cleaning, c), "Porcupine Cage Cleaning")
}

func TestRender_PlacementOrder(t *testing.T) {
	c := shelterCatalog(t)
	state := NewRunState()
	alloc := NewAllocator(c, nil)
	for _, item := range c.CageItems() {
		require.True(t, alloc.Place(item, state))
	}

	text := Render(state.Timetable(), c)
	blocks := strings.Split(text, "\n\n")
	require.Len(t, blocks, models.HoursPerDay+1)

	lines := strings.Split(blocks[0], "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Hour: 0", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Sly"))
	assert.True(t, strings.HasPrefix(lines[2], "Spike"))
	assert.True(t, strings.HasPrefix(lines[3], "Bucky"))
	assert.True(t, strings.HasPrefix(lines[4], "Wile"))
	assert.Equal(t, "Hour: 1\nEmpty", blocks[1])
}
