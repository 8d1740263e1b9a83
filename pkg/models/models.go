package models

// ScheduleRequest answers the decision requests of a non-interactive run
type ScheduleRequest struct {
	ApproveVolunteers bool           `json:"approve_volunteers"`
	VolunteerHours    []int          `json:"volunteer_hours,omitempty"` // restricts approvals when set
	Reschedule        map[string]int `json:"reschedule,omitempty"`      // item key -> new start hour
}

// ScheduleEntry is one placed item as returned by the API
type ScheduleEntry struct {
	Key            string `json:"key"`
	AnimalID       int    `json:"animal_id"`
	Nickname       string `json:"nickname"`
	TaskID         int    `json:"task_id"`
	Description    string `json:"description"`
	Duration       int    `json:"duration"`
	TreatmentID    int    `json:"treatment_id,omitempty"`
	NeedsVolunteer bool   `json:"needs_volunteer"`
}

// HourSlot is the state of a single hour after the run
type HourSlot struct {
	Hour      int             `json:"hour"`
	Remaining int             `json:"remaining"`
	Budget    int             `json:"budget"`
	Entries   []ScheduleEntry `json:"entries"`
}

// UnresolvedItem is an item the run could not place
type UnresolvedItem struct {
	Key            string `json:"key"`
	Label          string `json:"label"`
	Reason         string `json:"reason"`
	AvailableHours []int  `json:"available_hours"`
}

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	RunID       string           `json:"run_id"`
	Hours       []HourSlot       `json:"hours"`
	Unresolved  []UnresolvedItem `json:"unresolved"`
	Placed      int              `json:"placed"`
	Volunteers  int              `json:"volunteers"`
	Rescheduled int              `json:"rescheduled"`
	Warnings    []string         `json:"warnings,omitempty"`
	Text        string           `json:"text"`
}
