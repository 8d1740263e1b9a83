package scheduler

import (
	"errors"
	"fmt"
)

var (
	// ErrDataIntegrity is the sentinel every IntegrityError unwraps to
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrCancelled is returned by a Decider that gives up on an item
	ErrCancelled = errors.New("decision cancelled")

	// ErrInvalidHour describes a reschedule answer that was rejected
	ErrInvalidHour = errors.New("invalid reschedule hour")
)

// RepromptMessage is shown to the caretaker after a rejected reschedule answer
const RepromptMessage = "Invalid input, try again."

// IntegrityError reports imported records that do not fit together
type IntegrityError struct {
	Kind        string // "animal" or "task"
	ID          int
	TreatmentID int
	Reason      string
}

func (e *IntegrityError) Error() string {
	if e.TreatmentID != 0 {
		return fmt.Sprintf("treatment %d: %s %d %s", e.TreatmentID, e.Kind, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s %d %s", e.Kind, e.ID, e.Reason)
}

func (e *IntegrityError) Unwrap() error {
	return ErrDataIntegrity
}
