package scheduler

import (
	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

// MedicalItems turns every treatment into an item. A kit-confirmation treatment marks
// its animal as a kit, whether or not the item is placed later.
func (c *Catalog) MedicalItems() ([]*models.ScheduleItem, error) {
	items := make([]*models.ScheduleItem, 0, len(c.treatments))
	for _, tr := range c.treatments {
		animal, ok := c.animalByID[tr.AnimalID()]
		if !ok {
			return nil, &IntegrityError{Kind: "animal", ID: tr.AnimalID(), TreatmentID: tr.ID(), Reason: "does not exist"}
		}
		task, ok := c.tasks[tr.TaskID()]
		if !ok {
			return nil, &IntegrityError{Kind: "task", ID: tr.TaskID(), TreatmentID: tr.ID(), Reason: "does not exist"}
		}

		if tr.ConfirmsKit() {
			animal.MarkKit()
		}

		item, err := models.NewScheduleItem(animal.ID(), task.ID(), tr.StartHour(), task.Window(), task.Duration(), tr.ID())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// CageItems returns one cleaning item per animal, starting at midnight with a full-day window
func (c *Catalog) CageItems() []*models.ScheduleItem {
	items := make([]*models.ScheduleItem, 0, len(c.animals))
	for _, a := range c.animals {
		task := c.tasks[a.Species().CageCleaningTaskID()]
		item, _ := models.NewScheduleItem(a.ID(), task.ID(), 0, task.Window(), task.Duration(), models.NoTreatment)
		items = append(items, item)
	}
	return items
}

// FeedingItems returns the default feeding item of every animal that is not a kit
func (c *Catalog) FeedingItems() []*models.ScheduleItem {
	items := make([]*models.ScheduleItem, 0, len(c.animals))
	for _, a := range c.animals {
		if a.HasKit() {
			continue
		}
		items = append(items, a.FeedingItem())
	}
	return items
}

// Candidates concatenates medical, cleaning and feeding items. The order is the
// allocation order so treatments get first claim on capacity.
func (c *Catalog) Candidates() ([]*models.ScheduleItem, error) {
	medical, err := c.MedicalItems()
	if err != nil {
		return nil, err
	}
	cage := c.CageItems()
	feeding := c.FeedingItems()

	items := make([]*models.ScheduleItem, 0, len(medical)+len(cage)+len(feeding))
	items = append(items, medical...)
	items = append(items, cage...)
	items = append(items, feeding...)
	return items, nil
}
