package scheduler

import (
	"fmt"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

// Catalog holds the imported records of one scheduling run
type Catalog struct {
	animals    []*models.Animal
	animalByID map[int]*models.Animal
	tasks      map[int]models.Task
	treatments []*models.Treatment
}

// NewCatalog indexes the imported records and injects the synthetic cleaning tasks.
// Imported tasks may not use the reserved cleaning ids and ids must be unique.
func NewCatalog(animals []*models.Animal, tasks []models.Task, treatments []*models.Treatment) (*Catalog, error) {
	c := &Catalog{
		animals:    make([]*models.Animal, 0, len(animals)),
		animalByID: make(map[int]*models.Animal, len(animals)),
		tasks:      make(map[int]models.Task, len(tasks)+2),
		treatments: treatments,
	}

	for _, a := range animals {
		if _, dup := c.animalByID[a.ID()]; dup {
			return nil, &IntegrityError{Kind: "animal", ID: a.ID(), Reason: "is defined twice"}
		}
		c.animalByID[a.ID()] = a
		c.animals = append(c.animals, a)
	}

	for _, t := range tasks {
		if models.Reserved(t.ID()) {
			return nil, &IntegrityError{Kind: "task", ID: t.ID(), Reason: "collides with a reserved cleaning task"}
		}
		if _, dup := c.tasks[t.ID()]; dup {
			return nil, &IntegrityError{Kind: "task", ID: t.ID(), Reason: "is defined twice"}
		}
		c.tasks[t.ID()] = t
	}
	for _, t := range models.CleaningTasks() {
		c.tasks[t.ID()] = t
	}

	return c, nil
}

// Animal looks up an animal by id
func (c *Catalog) Animal(id int) (*models.Animal, bool) {
	a, ok := c.animalByID[id]
	return a, ok
}

// Task looks up a task by id, including the synthetic cleaning tasks
func (c *Catalog) Task(id int) (models.Task, bool) {
	t, ok := c.tasks[id]
	return t, ok
}

// Treatment looks up a treatment by id
func (c *Catalog) Treatment(id int) (*models.Treatment, bool) {
	for _, t := range c.treatments {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}

// Description returns the caretaker-facing label of an item's task
func (c *Catalog) Description(item *models.ScheduleItem) string {
	if item.IsFeeding() {
		return "Feeding"
	}
	if t, ok := c.tasks[item.TaskID()]; ok {
		return t.Description()
	}
	return fmt.Sprintf("Task %d", item.TaskID())
}

// Nickname returns the nickname of the item's animal
func (c *Catalog) Nickname(item *models.ScheduleItem) string {
	if a, ok := c.animalByID[item.AnimalID()]; ok {
		return a.Nickname()
	}
	return fmt.Sprintf("Animal %d", item.AnimalID())
}

// Label describes an item in prompts, e.g. "Feeding for Annie"
func (c *Catalog) Label(item *models.ScheduleItem) string {
	return c.Description(item) + " for " + c.Nickname(item)
}
