package scheduler

import (
	"slices"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

// Hourly minute budgets
const (
	BaseBudget   = 60
	WaivedBudget = 120
)

// Timetable lists the items placed in each hour, in placement order
type Timetable [models.HoursPerDay][]*models.ScheduleItem

// Len returns the number of placed items
func (t Timetable) Len() int {
	n := 0
	for _, items := range t {
		n += len(items)
	}
	return n
}

// RunState is the capacity table, prep ledger and timetable of one run.
// A fresh state starts every hour at 60 of 60 minutes.
type RunState struct {
	remaining [models.HoursPerDay]int
	budget    [models.HoursPerDay]int
	prepped   [models.HoursPerDay]map[models.Species]bool
	timetable Timetable
}

// NewRunState returns an empty day
func NewRunState() *RunState {
	s := &RunState{}
	for h := range s.remaining {
		s.remaining[h] = BaseBudget
		s.budget[h] = BaseBudget
	}
	return s
}

func inDay(hour int) bool {
	return hour >= 0 && hour < models.HoursPerDay
}

// Remaining returns the unused minutes of an hour; hours outside the day have none
func (s *RunState) Remaining(hour int) int {
	if !inDay(hour) {
		return 0
	}
	return s.remaining[hour]
}

// Budget returns the maximum minutes of an hour
func (s *RunState) Budget(hour int) int {
	if !inDay(hour) {
		return 0
	}
	return s.budget[hour]
}

// Waived reports whether a volunteer waiver was granted for the hour
func (s *RunState) Waived(hour int) bool {
	return inDay(hour) && s.budget[hour] != BaseBudget
}

// GrantWaiver doubles the budget of an hour and adds 60 minutes of capacity.
// Only the first grant per hour has an effect; it reports whether this call applied it.
func (s *RunState) GrantWaiver(hour int) bool {
	if !inDay(hour) || s.Waived(hour) {
		return false
	}
	s.budget[hour] = WaivedBudget
	s.remaining[hour] += WaivedBudget - BaseBudget
	return true
}

// IsFull reports whether nothing has been placed into the hour yet
func (s *RunState) IsFull(hour int) bool {
	return inDay(hour) && s.remaining[hour] == s.budget[hour]
}

// FullHours lists the hours whose capacity is untouched, in ascending order
func (s *RunState) FullHours() []int {
	var hours []int
	for h := 0; h < models.HoursPerDay; h++ {
		if s.IsFull(h) {
			hours = append(hours, h)
		}
	}
	return hours
}

// PrepCharged reports whether the feeding surcharge of a species was billed in the hour
func (s *RunState) PrepCharged(hour int, species models.Species) bool {
	return inDay(hour) && s.prepped[hour][species]
}

// Items returns the items placed in an hour
func (s *RunState) Items(hour int) []*models.ScheduleItem {
	if !inDay(hour) {
		return nil
	}
	return s.timetable[hour]
}

// Timetable returns a copy of the placements
func (s *RunState) Timetable() Timetable {
	var t Timetable
	for h, items := range s.timetable {
		t[h] = slices.Clone(items)
	}
	return t
}

// HourOf returns the hour the item was committed to
func (s *RunState) HourOf(item *models.ScheduleItem) (int, bool) {
	for h, items := range s.timetable {
		if slices.Contains(items, item) {
			return h, true
		}
	}
	return 0, false
}

// commit places the item and bills its minutes. prep is the species whose
// surcharge is included in minutes, or "" when none is.
func (s *RunState) commit(hour int, item *models.ScheduleItem, minutes int, prep models.Species) {
	s.timetable[hour] = append(s.timetable[hour], item)
	s.remaining[hour] -= minutes
	if prep != "" {
		if s.prepped[hour] == nil {
			s.prepped[hour] = make(map[models.Species]bool)
		}
		s.prepped[hour][prep] = true
	}
}
