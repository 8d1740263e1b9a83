package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
	"github.com/arnavshah/shelter-scheduler-go/pkg/scheduler"
)

// Fixture is a YAML (or JSON) description of shelter records
type Fixture struct {
	Animals    []Animal    `yaml:"animals" json:"animals"`
	Tasks      []Task      `yaml:"tasks" json:"tasks"`
	Treatments []Treatment `yaml:"treatments" json:"treatments"`
}

// UnmarshalYAML reads the table rows using the fixture field names
func (a *Animal) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		ID       int    `yaml:"id"`
		Nickname string `yaml:"nickname"`
		Species  string `yaml:"species"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*a = Animal{AnimalID: raw.ID, Nickname: raw.Nickname, Species: raw.Species}
	return nil
}

// UnmarshalYAML reads the table rows using the fixture field names
func (t *Task) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		ID          int    `yaml:"id"`
		Description string `yaml:"description"`
		Duration    int    `yaml:"duration"`
		MaxWindow   int    `yaml:"max_window"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*t = Task{TaskID: raw.ID, Description: raw.Description, Duration: raw.Duration, MaxWindow: raw.MaxWindow}
	return nil
}

// UnmarshalYAML reads the table rows using the fixture field names
func (t *Treatment) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		ID        int `yaml:"id"`
		AnimalID  int `yaml:"animal_id"`
		TaskID    int `yaml:"task_id"`
		StartHour int `yaml:"start_hour"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*t = Treatment{TreatmentID: raw.ID, AnimalID: raw.AnimalID, TaskID: raw.TaskID, StartHour: raw.StartHour}
	return nil
}

// ParseFixture decodes fixture data
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

// LoadFixture reads a fixture from a path or any afs URL
func LoadFixture(ctx context.Context, location string) (*Fixture, error) {
	if !strings.Contains(location, "://") {
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, err
		}
		location = abs
	}
	data, err := afs.New().DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", location, err)
	}
	return ParseFixture(data)
}

// Catalog builds the domain catalog of the fixture, checking every record and
// every treatment reference
func (f *Fixture) Catalog() (*scheduler.Catalog, error) {
	animals := make([]*models.Animal, 0, len(f.Animals))
	for _, row := range f.Animals {
		a, err := models.NewAnimal(row.AnimalID, row.Nickname, row.Species)
		if err != nil {
			return nil, err
		}
		animals = append(animals, a)
	}
	tasks := make([]models.Task, 0, len(f.Tasks))
	for _, row := range f.Tasks {
		t, err := models.NewTask(row.TaskID, row.Description, row.Duration, row.MaxWindow)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	treatments := make([]*models.Treatment, 0, len(f.Treatments))
	for _, row := range f.Treatments {
		t, err := models.NewTreatment(row.TreatmentID, row.AnimalID, row.TaskID, row.StartHour)
		if err != nil {
			return nil, err
		}
		treatments = append(treatments, t)
	}

	catalog, err := scheduler.NewCatalog(animals, tasks, treatments)
	if err != nil {
		return nil, err
	}
	if _, err := catalog.MedicalItems(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Seed validates the fixture and upserts its rows in one transaction
func Seed(ctx context.Context, db *gorm.DB, f *Fixture) error {
	if _, err := f.Catalog(); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := func() *gorm.DB { return tx.Clauses(clause.OnConflict{UpdateAll: true}) }
		if len(f.Animals) > 0 {
			if err := upsert().Create(&f.Animals).Error; err != nil {
				return fmt.Errorf("seed animals: %w", err)
			}
		}
		if len(f.Tasks) > 0 {
			if err := upsert().Create(&f.Tasks).Error; err != nil {
				return fmt.Errorf("seed tasks: %w", err)
			}
		}
		if len(f.Treatments) > 0 {
			if err := upsert().Create(&f.Treatments).Error; err != nil {
				return fmt.Errorf("seed treatments: %w", err)
			}
		}
		return nil
	})
}
