package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
)

// ErrTreatmentNotFound is returned when a start hour update matches no row
var ErrTreatmentNotFound = errors.New("treatment not found")

// Store reads the shelter records and persists rescheduled treatments
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open database
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func orderBy(column string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: column}}
}

// ListAnimals returns the animal rows ordered by id
func (s *Store) ListAnimals(ctx context.Context) ([]Animal, error) {
	var rows []Animal
	if err := s.db.WithContext(ctx).Order(orderBy("AnimalID")).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListTasks returns the task rows ordered by id
func (s *Store) ListTasks(ctx context.Context) ([]Task, error) {
	var rows []Task
	if err := s.db.WithContext(ctx).Order(orderBy("TaskID")).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListTreatments returns the treatment rows ordered by id
func (s *Store) ListTreatments(ctx context.Context) ([]Treatment, error) {
	var rows []Treatment
	if err := s.db.WithContext(ctx).Order(orderBy("TreatmentID")).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchAnimals loads every animal as a domain value
func (s *Store) FetchAnimals(ctx context.Context) ([]*models.Animal, error) {
	rows, err := s.ListAnimals(ctx)
	if err != nil {
		return nil, err
	}
	animals := make([]*models.Animal, 0, len(rows))
	for _, row := range rows {
		a, err := models.NewAnimal(row.AnimalID, row.Nickname, row.Species)
		if err != nil {
			return nil, fmt.Errorf("animal row %d: %w", row.AnimalID, err)
		}
		animals = append(animals, a)
	}
	return animals, nil
}

// FetchTasks loads every task as a domain value
func (s *Store) FetchTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		t, err := models.NewTask(row.TaskID, row.Description, row.Duration, row.MaxWindow)
		if err != nil {
			return nil, fmt.Errorf("task row %d: %w", row.TaskID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// FetchTreatments loads every treatment as a domain value
func (s *Store) FetchTreatments(ctx context.Context) ([]*models.Treatment, error) {
	rows, err := s.ListTreatments(ctx)
	if err != nil {
		return nil, err
	}
	treatments := make([]*models.Treatment, 0, len(rows))
	for _, row := range rows {
		t, err := models.NewTreatment(row.TreatmentID, row.AnimalID, row.TaskID, row.StartHour)
		if err != nil {
			return nil, fmt.Errorf("treatment row %d: %w", row.TreatmentID, err)
		}
		treatments = append(treatments, t)
	}
	return treatments, nil
}

// PersistTreatmentStartHour stores the new start hour of one treatment
func (s *Store) PersistTreatmentStartHour(ctx context.Context, treatmentID, hour int) error {
	if err := models.ValidateStartHour(hour); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&Treatment{}).
		Where(clause.Eq{Column: clause.Column{Name: "TreatmentID"}, Value: treatmentID}).
		Update("StartHour", hour)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrTreatmentNotFound, treatmentID)
	}
	return nil
}
