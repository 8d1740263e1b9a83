package scheduler

import (
	"go.uber.org/zap"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

// Allocator places items into the first hour of their window with enough capacity
type Allocator struct {
	catalog *Catalog
	logger  *zap.Logger
}

// NewAllocator creates an allocator that resolves feeding species through the catalog
func NewAllocator(catalog *Catalog, logger *zap.Logger) *Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{catalog: catalog, logger: logger}
}

// Place scans the item's window from its start hour and commits it to the first hour
// that can absorb its effective duration. It returns false and leaves the state
// untouched when no hour fits.
func (a *Allocator) Place(item *models.ScheduleItem, state *RunState) bool {
	priority := item.Window()
	last := item.StartHour() + item.Window()

	for hour := item.StartHour(); hour < last; hour++ {
		minutes := item.Duration()
		var prep models.Species
		if item.IsFeeding() {
			if species, extra := a.surcharge(item, hour, state); extra > 0 {
				minutes += extra
				prep = species
			}
		}

		if inDay(hour) && state.Remaining(hour)-minutes >= 0 {
			state.commit(hour, item, minutes, prep)
			a.logger.Debug("item placed",
				zap.String("item", item.Key()),
				zap.Int("hour", hour),
				zap.Int("minutes", minutes),
				zap.Int("remaining", state.Remaining(hour)))
			return true
		}

		// Each rejected hour costs one unit of priority; running out ends the search
		// even if the scan range were wider than the window.
		priority--
		if priority <= 0 {
			return false
		}
	}
	return false
}

// surcharge returns the prep minutes the item would add in the hour: the first fox
// or coyote fed in an hour pays for preparing that species' food.
func (a *Allocator) surcharge(item *models.ScheduleItem, hour int, state *RunState) (models.Species, int) {
	if !inDay(hour) || a.catalog == nil {
		return "", 0
	}
	animal, ok := a.catalog.Animal(item.AnimalID())
	if !ok {
		return "", 0
	}
	species := animal.Species()
	extra := species.PrepSurcharge()
	if extra == 0 || state.PrepCharged(hour, species) {
		return "", 0
	}
	return species, extra
}
