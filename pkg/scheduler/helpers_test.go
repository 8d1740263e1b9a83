package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

const medicationTaskID = 5

type memSource struct {
	animals    []*models.Animal
	tasks      []models.Task
	treatments []*models.Treatment
	err        error
}

func (m *memSource) FetchAnimals(context.Context) ([]*models.Animal, error) {
	return m.animals, m.err
}

func (m *memSource) FetchTasks(context.Context) ([]models.Task, error) {
	return m.tasks, m.err
}

func (m *memSource) FetchTreatments(context.Context) ([]*models.Treatment, error) {
	return m.treatments, m.err
}

type persistCall struct {
	treatmentID int
	hour        int
}

type fakeUpdater struct {
	calls []persistCall
	err   error
}

func (f *fakeUpdater) PersistTreatmentStartHour(_ context.Context, treatmentID, hour int) error {
	f.calls = append(f.calls, persistCall{treatmentID, hour})
	return f.err
}

// scriptedDecider replays fixed answers and records what it was asked
type scriptedDecider struct {
	approve       []bool
	answers       []string
	err           error
	volunteerReq  []VolunteerRequest
	rescheduleReq []RescheduleRequest
}

func (d *scriptedDecider) ApproveVolunteer(_ context.Context, req VolunteerRequest) (bool, error) {
	d.volunteerReq = append(d.volunteerReq, req)
	if d.err != nil {
		return false, d.err
	}
	if len(d.approve) == 0 {
		return false, nil
	}
	answer := d.approve[0]
	d.approve = d.approve[1:]
	return answer, nil
}

func (d *scriptedDecider) RescheduleHour(_ context.Context, req RescheduleRequest) (string, error) {
	d.rescheduleReq = append(d.rescheduleReq, req)
	if len(d.answers) == 0 {
		return "", ErrCancelled
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func newAnimal(t *testing.T, id int, nickname, species string) *models.Animal {
	t.Helper()
	a, err := models.NewAnimal(id, nickname, species)
	require.NoError(t, err)
	return a
}

func newTask(t *testing.T, id int, description string, duration, window int) models.Task {
	t.Helper()
	task, err := models.NewTask(id, description, duration, window)
	require.NoError(t, err)
	return task
}

func newTreatment(t *testing.T, id, animalID, taskID, hour int) *models.Treatment {
	t.Helper()
	tr, err := models.NewTreatment(id, animalID, taskID, hour)
	require.NoError(t, err)
	return tr
}

func newItem(t *testing.T, animalID, taskID, startHour, window, duration, treatmentID int) *models.ScheduleItem {
	t.Helper()
	item, err := models.NewScheduleItem(animalID, taskID, startHour, window, duration, treatmentID)
	require.NoError(t, err)
	return item
}

// shelterSource holds a fox, a porcupine, a beaver and a coyote with two treatments:
// a kit confirmation for the beaver and a medication for the fox.
func shelterSource(t *testing.T) *memSource {
	t.Helper()
	return &memSource{
		animals: []*models.Animal{
			newAnimal(t, 1, "Sly", "fox"),
			newAnimal(t, 2, "Spike", "porcupine"),
			newAnimal(t, 3, "Bucky", "beaver"),
			newAnimal(t, 4, "Wile", "coyote"),
		},
		tasks: []models.Task{
			newTask(t, models.KitConfirmationTaskID, "Kit feeding", 30, 2),
			newTask(t, medicationTaskID, "Give medication", 30, 2),
		},
		treatments: []*models.Treatment{
			newTreatment(t, 10, 3, models.KitConfirmationTaskID, 8),
			newTreatment(t, 11, 1, medicationTaskID, 10),
		},
	}
}

func shelterCatalog(t *testing.T) *Catalog {
	t.Helper()
	src := shelterSource(t)
	c, err := NewCatalog(src.animals, src.tasks, src.treatments)
	require.NoError(t, err)
	return c
}

// fill uses up minutes of an hour with a filler item
func fill(t *testing.T, state *RunState, hour, minutes int) {
	t.Helper()
	state.commit(hour, newItem(t, 99, 42, hour, 1, minutes, models.NoTreatment), minutes, "")
}
