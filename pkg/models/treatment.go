package models

// Treatment assigns a task to an animal at a caretaker-chosen hour
type Treatment struct {
	id        int
	animalID  int
	taskID    int
	startHour int
}

// NewTreatment validates and builds a treatment
func NewTreatment(id, animalID, taskID, startHour int) (*Treatment, error) {
	if err := ValidateStartHour(startHour); err != nil {
		return nil, err
	}
	return &Treatment{id: id, animalID: animalID, taskID: taskID, startHour: startHour}, nil
}

// ID returns the treatment id
func (t *Treatment) ID() int { return t.id }

// AnimalID returns the treated animal
func (t *Treatment) AnimalID() int { return t.animalID }

// TaskID returns the task to perform
func (t *Treatment) TaskID() int { return t.taskID }

// StartHour returns the hour the treatment is due
func (t *Treatment) StartHour() int { return t.startHour }

// ConfirmsKit reports whether the treatment is the kit-confirmation task
func (t *Treatment) ConfirmsKit() bool { return t.taskID == KitConfirmationTaskID }

// SetStartHour moves the treatment to a new hour
func (t *Treatment) SetStartHour(hour int) error {
	if err := ValidateStartHour(hour); err != nil {
		return err
	}
	t.startHour = hour
	return nil
}
