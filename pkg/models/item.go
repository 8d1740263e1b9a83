package models

import "fmt"

// NoTreatment marks an item that was not generated from a treatment
const NoTreatment = 0

// ScheduleItem is the unit the allocator places into an hour
type ScheduleItem struct {
	animalID       int
	taskID         int
	startHour      int
	window         int
	duration       int
	treatmentID    int
	needsVolunteer bool
}

// NewScheduleItem validates the timing fields and builds an item
func NewScheduleItem(animalID, taskID, startHour, window, duration, treatmentID int) (*ScheduleItem, error) {
	if err := ValidateDuration(duration); err != nil {
		return nil, err
	}
	if err := ValidateWindow(window); err != nil {
		return nil, err
	}
	if err := ValidateStartHour(startHour); err != nil {
		return nil, err
	}
	return &ScheduleItem{
		animalID:    animalID,
		taskID:      taskID,
		startHour:   startHour,
		window:      window,
		duration:    duration,
		treatmentID: treatmentID,
	}, nil
}

// AnimalID returns the animal the item belongs to
func (i *ScheduleItem) AnimalID() int { return i.animalID }

// TaskID returns the task performed
func (i *ScheduleItem) TaskID() int { return i.taskID }

// StartHour returns the first hour of the window
func (i *ScheduleItem) StartHour() int { return i.startHour }

// Window returns the number of hours the item may start in
func (i *ScheduleItem) Window() int { return i.window }

// Duration returns the minutes the item takes, prep surcharge excluded
func (i *ScheduleItem) Duration() int { return i.duration }

// TreatmentID returns the source treatment or NoTreatment
func (i *ScheduleItem) TreatmentID() int { return i.treatmentID }

// NeedsVolunteer reports whether the item relies on a volunteer waiver
func (i *ScheduleItem) NeedsVolunteer() bool { return i.needsVolunteer }

// IsFeeding reports whether the item is a feeding slot
func (i *ScheduleItem) IsFeeding() bool { return i.taskID == FeedingTaskID }

// HasTreatment reports whether the item came from a treatment record
func (i *ScheduleItem) HasTreatment() bool { return i.treatmentID != NoTreatment }

// SetStartHour moves the item. Only the overflow resolver calls this.
func (i *ScheduleItem) SetStartHour(hour int) error {
	if err := ValidateStartHour(hour); err != nil {
		return err
	}
	i.startHour = hour
	return nil
}

// MarkNeedsVolunteer flags the item as relying on a capacity waiver
func (i *ScheduleItem) MarkNeedsVolunteer() { i.needsVolunteer = true }

// Key identifies the item across requests
func (i *ScheduleItem) Key() string {
	switch {
	case i.HasTreatment():
		return fmt.Sprintf("treatment:%d", i.treatmentID)
	case i.IsFeeding():
		return fmt.Sprintf("feeding:%d", i.animalID)
	case Reserved(i.taskID):
		return fmt.Sprintf("cleaning:%d", i.animalID)
	default:
		return fmt.Sprintf("task:%d:%d", i.taskID, i.animalID)
	}
}
