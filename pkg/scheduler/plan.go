package scheduler

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

// PlanDecider answers decision requests from a request submitted up front.
// Every reschedule answer is used once; anything else cancels the item.
type PlanDecider struct {
	plan models.ScheduleRequest
}

// NewPlanDecider creates a decider from a schedule request
func NewPlanDecider(plan models.ScheduleRequest) *PlanDecider {
	return &PlanDecider{plan: plan}
}

// ApproveVolunteer approves when volunteers are allowed for the hour
func (p *PlanDecider) ApproveVolunteer(_ context.Context, req VolunteerRequest) (bool, error) {
	if !p.plan.ApproveVolunteers {
		return false, nil
	}
	if len(p.plan.VolunteerHours) == 0 {
		return true, nil
	}
	return slices.Contains(p.plan.VolunteerHours, req.Hour), nil
}

// RescheduleHour returns the planned hour for the item on the first attempt
func (p *PlanDecider) RescheduleHour(_ context.Context, req RescheduleRequest) (string, error) {
	if req.Attempt > 1 {
		return "", fmt.Errorf("%w: %v", ErrCancelled, req.Problem)
	}
	hour, ok := p.plan.Reschedule[req.Item.Key()]
	if !ok {
		return "", ErrCancelled
	}
	return strconv.Itoa(hour), nil
}
