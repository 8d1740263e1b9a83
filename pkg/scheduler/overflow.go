package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

// VolunteerRequest asks whether a backup volunteer may double an hour's capacity
type VolunteerRequest struct {
	Hour  int
	Item  *models.ScheduleItem
	Label string
}

// RescheduleRequest asks for a new start hour. Problem is set when the previous
// answer was rejected.
type RescheduleRequest struct {
	Item      *models.ScheduleItem
	Label     string
	Available []int
	Attempt   int
	Problem   error
}

// Decider is the human in the loop. Both calls block until answered; returning
// ErrCancelled (or a context error) abandons the item.
type Decider interface {
	ApproveVolunteer(ctx context.Context, req VolunteerRequest) (bool, error)
	RescheduleHour(ctx context.Context, req RescheduleRequest) (string, error)
}

// TreatmentUpdater persists a rescheduled treatment
type TreatmentUpdater interface {
	PersistTreatmentStartHour(ctx context.Context, treatmentID, hour int) error
}

// Outcome is the terminal state of an overflowing item
type Outcome int

const (
	OutcomeVolunteer Outcome = iota + 1
	OutcomeRescheduled
	OutcomeUnresolved
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVolunteer:
		return "volunteer"
	case OutcomeRescheduled:
		return "rescheduled"
	case OutcomeUnresolved:
		return "unresolved"
	case OutcomeCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Placed reports whether the item ended up in the timetable
func (o Outcome) Placed() bool {
	return o == OutcomeVolunteer || o == OutcomeRescheduled
}

// Resolution describes how an overflowing item was handled
type Resolution struct {
	Outcome    Outcome
	Hour       int // waived hour or new start hour
	Reason     string
	Available  []int
	PersistErr error
}

// Resolver handles items the allocator could not place
type Resolver struct {
	allocator *Allocator
	catalog   *Catalog
	decider   Decider
	updater   TreatmentUpdater
	logger    *zap.Logger
}

// NewResolver wires a resolver. updater may be nil when nothing is persisted.
func NewResolver(allocator *Allocator, catalog *Catalog, decider Decider, updater TreatmentUpdater, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		allocator: allocator,
		catalog:   catalog,
		decider:   decider,
		updater:   updater,
		logger:    logger,
	}
}

// Resolve offers a volunteer waiver for the first un-waived hour of the item's
// window and falls back to asking for a new start hour.
func (r *Resolver) Resolve(ctx context.Context, item *models.ScheduleItem, state *RunState) Resolution {
	label := r.catalog.Label(item)

	if hour, ok := waiverHour(item, state); ok {
		approved, err := r.decider.ApproveVolunteer(ctx, VolunteerRequest{Hour: hour, Item: item, Label: label})
		if err != nil {
			return r.stopped(item, state, err)
		}
		if approved {
			return r.volunteer(item, hour, state)
		}
	}

	return r.reschedule(ctx, item, label, state)
}

// waiverHour finds the first hour of the window that has not been waived yet
func waiverHour(item *models.ScheduleItem, state *RunState) (int, bool) {
	for h := item.StartHour(); h < item.StartHour()+item.Window() && inDay(h); h++ {
		if !state.Waived(h) {
			return h, true
		}
	}
	return 0, false
}

func (r *Resolver) volunteer(item *models.ScheduleItem, hour int, state *RunState) Resolution {
	state.GrantWaiver(hour)
	item.MarkNeedsVolunteer()
	r.logger.Info("volunteer waiver granted", zap.String("item", item.Key()), zap.Int("hour", hour))

	if r.allocator.Place(item, state) {
		return Resolution{Outcome: OutcomeVolunteer, Hour: hour}
	}
	r.logger.Warn("item does not fit after waiver", zap.String("item", item.Key()), zap.Int("hour", hour))
	return Resolution{
		Outcome:   OutcomeUnresolved,
		Hour:      hour,
		Reason:    fmt.Sprintf("no capacity within window even with a volunteer at hour %d", hour),
		Available: state.FullHours(),
	}
}

func (r *Resolver) reschedule(ctx context.Context, item *models.ScheduleItem, label string, state *RunState) Resolution {
	var problem error
	for attempt := 1; ; attempt++ {
		available := state.FullHours()
		if len(available) == 0 {
			return Resolution{Outcome: OutcomeUnresolved, Reason: "no hour has full capacity left"}
		}
		if err := ctx.Err(); err != nil {
			return r.stopped(item, state, err)
		}

		answer, err := r.decider.RescheduleHour(ctx, RescheduleRequest{
			Item:      item,
			Label:     label,
			Available: available,
			Attempt:   attempt,
			Problem:   problem,
		})
		if err != nil {
			return r.stopped(item, state, err)
		}

		hour, err := parseHour(answer, state)
		if err != nil {
			r.logger.Debug("reschedule answer rejected", zap.String("item", item.Key()), zap.Error(err))
			problem = err
			continue
		}

		previous := item.StartHour()
		if err := item.SetStartHour(hour); err != nil {
			problem = err
			continue
		}
		if !r.allocator.Place(item, state) {
			_ = item.SetStartHour(previous)
			return Resolution{
				Outcome:   OutcomeUnresolved,
				Hour:      hour,
				Reason:    fmt.Sprintf("does not fit at hour %d", hour),
				Available: state.FullHours(),
			}
		}

		// a long item may spill into a later waived hour of its window
		if placed, ok := state.HourOf(item); ok && placed != hour {
			hour = placed
			_ = item.SetStartHour(hour)
		}

		r.logger.Info("item rescheduled", zap.String("item", item.Key()), zap.Int("hour", hour))
		res := Resolution{Outcome: OutcomeRescheduled, Hour: hour}
		if item.HasTreatment() {
			res.PersistErr = r.persist(ctx, item.TreatmentID(), hour)
		}
		return res
	}
}

func (r *Resolver) persist(ctx context.Context, treatmentID, hour int) error {
	if tr, ok := r.catalog.Treatment(treatmentID); ok {
		_ = tr.SetStartHour(hour)
	}
	if r.updater == nil {
		return nil
	}
	if err := r.updater.PersistTreatmentStartHour(ctx, treatmentID, hour); err != nil {
		r.logger.Error("failed to persist treatment start hour",
			zap.Int("treatment", treatmentID), zap.Int("hour", hour), zap.Error(err))
		return fmt.Errorf("persist treatment %d: %w", treatmentID, err)
	}
	return nil
}

func (r *Resolver) stopped(item *models.ScheduleItem, state *RunState, err error) Resolution {
	outcome := OutcomeUnresolved
	if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		outcome = OutcomeCancelled
	}
	r.logger.Warn("overflow decision stopped", zap.String("item", item.Key()), zap.Error(err))
	return Resolution{Outcome: outcome, Reason: err.Error(), Available: state.FullHours()}
}

// parseHour accepts an integer naming an hour whose capacity is untouched
func parseHour(answer string, state *RunState) (int, error) {
	hour, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidHour, answer)
	}
	if !state.IsFull(hour) {
		return 0, fmt.Errorf("%w: hour %d is not fully available", ErrInvalidHour, hour)
	}
	return hour, nil
}
