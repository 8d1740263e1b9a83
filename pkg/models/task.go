package models

// Reserved task ids
const (
	FeedingTaskID               = 0
	KitConfirmationTaskID       = 1
	PorcupineCageCleaningTaskID = -1
	CageCleaningTaskID          = -2
)

// Day layout
const (
	HoursPerDay = 24
	LastHour    = HoursPerDay - 1
)

// Task is a care activity with a duration and the window it must start in
type Task struct {
	id          int
	description string
	duration    int
	window      int
}

// NewTask validates and builds a task
func NewTask(id int, description string, duration, window int) (Task, error) {
	if err := ValidateDuration(duration); err != nil {
		return Task{}, err
	}
	if err := ValidateWindow(window); err != nil {
		return Task{}, err
	}
	return Task{id: id, description: description, duration: duration, window: window}, nil
}

// ID returns the task identifier
func (t Task) ID() int { return t.id }

// Description returns the caretaker-facing label
func (t Task) Description() string { return t.description }

// Duration returns the task length in minutes
func (t Task) Duration() int { return t.duration }

// Window returns the number of hours the task may start in
func (t Task) Window() int { return t.window }

// Reserved reports whether the id belongs to a synthetic cleaning task
func Reserved(taskID int) bool {
	return taskID == PorcupineCageCleaningTaskID || taskID == CageCleaningTaskID
}

// CleaningTasks returns the two synthetic cage-cleaning tasks injected into every run
func CleaningTasks() []Task {
	return []Task{
		{id: CageCleaningTaskID, description: "Cage Cleaning", duration: 5, window: HoursPerDay},
		{id: PorcupineCageCleaningTaskID, description: "Porcupine Cage Cleaning", duration: 10, window: HoursPerDay},
	}
}
