package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

// Source loads the records a run is built from
type Source interface {
	FetchAnimals(ctx context.Context) ([]*models.Animal, error)
	FetchTasks(ctx context.Context) ([]models.Task, error)
	FetchTreatments(ctx context.Context) ([]*models.Treatment, error)
}

// Scheduler builds the daily timetable from a Source
type Scheduler struct {
	source  Source
	updater TreatmentUpdater
	logger  *zap.Logger
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithLogger sets the logger used for the run
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithUpdater sets where rescheduled treatments are persisted
func WithUpdater(updater TreatmentUpdater) Option {
	return func(s *Scheduler) {
		s.updater = updater
	}
}

// New creates a scheduler. A source that also implements TreatmentUpdater
// persists rescheduled treatments unless WithUpdater overrides it.
func New(source Source, opts ...Option) *Scheduler {
	s := &Scheduler{source: source, logger: zap.NewNop()}
	if u, ok := source.(TreatmentUpdater); ok {
		s.updater = u
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the records and indexes them into a catalog
func (s *Scheduler) Load(ctx context.Context) (*Catalog, error) {
	animals, err := s.source.FetchAnimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch animals: %w", err)
	}
	tasks, err := s.source.FetchTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	treatments, err := s.source.FetchTreatments(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch treatments: %w", err)
	}
	for _, a := range animals {
		if !a.Species().Known() {
			s.logger.Warn("unknown species, using default feeding profile",
				zap.Int("animal", a.ID()), zap.String("species", a.SpeciesTag()))
		}
	}
	return NewCatalog(animals, tasks, treatments)
}

// Unresolved is an item the run left out of the timetable
type Unresolved struct {
	Item       *models.ScheduleItem
	Resolution Resolution
}

// Result is the outcome of a scheduling run
type Result struct {
	RunID         string
	Catalog       *Catalog
	State         *RunState
	Volunteers    int
	Rescheduled   int
	Unresolved    []Unresolved
	PersistErrors []error
	Text          string
}

// Placed returns the number of items in the timetable
func (r *Result) Placed() int {
	return r.State.Timetable().Len()
}

// Run loads the records and schedules them, consulting the decider for overflow
func (s *Scheduler) Run(ctx context.Context, decider Decider) (*Result, error) {
	catalog, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.Schedule(ctx, catalog, decider)
}

// Schedule allocates every candidate of the catalog in order on a fresh state
func (s *Scheduler) Schedule(ctx context.Context, catalog *Catalog, decider Decider) (*Result, error) {
	items, err := catalog.Candidates()
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:   uuid.NewString(),
		Catalog: catalog,
		State:   NewRunState(),
	}
	logger := s.logger.With(zap.String("run_id", result.RunID))
	allocator := NewAllocator(catalog, logger)
	resolver := NewResolver(allocator, catalog, decider, s.updater, logger)

	logger.Info("scheduling run started", zap.Int("items", len(items)))
	for _, item := range items {
		if allocator.Place(item, result.State) {
			continue
		}

		res := resolver.Resolve(ctx, item, result.State)
		switch res.Outcome {
		case OutcomeVolunteer:
			result.Volunteers++
		case OutcomeRescheduled:
			result.Rescheduled++
		default:
			logger.Warn("item left unscheduled",
				zap.String("item", item.Key()),
				zap.String("outcome", res.Outcome.String()),
				zap.String("reason", res.Reason))
			result.Unresolved = append(result.Unresolved, Unresolved{Item: item, Resolution: res})
		}
		if res.PersistErr != nil {
			result.PersistErrors = append(result.PersistErrors, res.PersistErr)
		}
	}

	result.Text = Render(result.State.Timetable(), catalog)
	logger.Info("scheduling run finished",
		zap.Int("placed", result.Placed()),
		zap.Int("volunteers", result.Volunteers),
		zap.Int("rescheduled", result.Rescheduled),
		zap.Int("unresolved", len(result.Unresolved)))
	return result, nil
}

// Response converts the result into the API representation
func (r *Result) Response() models.ScheduleResponse {
	resp := models.ScheduleResponse{
		RunID:       r.RunID,
		Hours:       make([]models.HourSlot, 0, models.HoursPerDay),
		Unresolved:  make([]models.UnresolvedItem, 0, len(r.Unresolved)),
		Placed:      r.Placed(),
		Volunteers:  r.Volunteers,
		Rescheduled: r.Rescheduled,
		Text:        r.Text,
	}

	for hour, items := range r.State.Timetable() {
		slot := models.HourSlot{
			Hour:      hour,
			Remaining: r.State.Remaining(hour),
			Budget:    r.State.Budget(hour),
			Entries:   make([]models.ScheduleEntry, 0, len(items)),
		}
		for _, item := range items {
			slot.Entries = append(slot.Entries, models.ScheduleEntry{
				Key:            item.Key(),
				AnimalID:       item.AnimalID(),
				Nickname:       r.Catalog.Nickname(item),
				TaskID:         item.TaskID(),
				Description:    r.Catalog.Description(item),
				Duration:       item.Duration(),
				TreatmentID:    item.TreatmentID(),
				NeedsVolunteer: item.NeedsVolunteer(),
			})
		}
		resp.Hours = append(resp.Hours, slot)
	}

	for _, u := range r.Unresolved {
		available := u.Resolution.Available
		if available == nil {
			available = []int{}
		}
		resp.Unresolved = append(resp.Unresolved, models.UnresolvedItem{
			Key:            u.Item.Key(),
			Label:          r.Catalog.Label(u.Item),
			Reason:         u.Resolution.Reason,
			AvailableHours: available,
		})
	}
	for _, err := range r.PersistErrors {
		resp.Warnings = append(resp.Warnings, err.Error())
	}
	return resp
}

// Inventory counts the candidates a catalog would produce
type Inventory struct {
	Animals    int `json:"animals"`
	Tasks      int `json:"tasks"`
	Treatments int `json:"treatments"`
	Medical    int `json:"medical_items"`
	Cleaning   int `json:"cleaning_items"`
	Feeding    int `json:"feeding_items"`
}

// Inspect loads the records and generates candidates without allocating them
func (s *Scheduler) Inspect(ctx context.Context) (*Inventory, error) {
	catalog, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Inventory()
}

// Inventory generates the candidates of the catalog and counts them
func (c *Catalog) Inventory() (*Inventory, error) {
	medical, err := c.MedicalItems()
	if err != nil {
		return nil, err
	}
	return &Inventory{
		Animals:    len(c.animals),
		Tasks:      len(c.tasks),
		Treatments: len(c.treatments),
		Medical:    len(medical),
		Cleaning:   len(c.CageItems()),
		Feeding:    len(c.FeedingItems()),
	}, nil
}
