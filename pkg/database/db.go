package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Animal represents the animals table
type Animal struct {
	AnimalID int    `gorm:"column:AnimalID;primaryKey;autoIncrement:false" json:"id"`
	Nickname string `gorm:"column:AnimalNickname;not null" json:"nickname"`
	Species  string `gorm:"column:AnimalSpecies;not null" json:"species"`
}

// TableName keeps the table name of the shelter database
func (Animal) TableName() string { return "animals" }

// Task represents the tasks table
type Task struct {
	TaskID      int    `gorm:"column:TaskID;primaryKey;autoIncrement:false" json:"id"`
	Description string `gorm:"column:Description;not null" json:"description"`
	Duration    int    `gorm:"column:Duration;not null" json:"duration"`
	MaxWindow   int    `gorm:"column:MaxWindow;not null" json:"max_window"`
}

// TableName keeps the table name of the shelter database
func (Task) TableName() string { return "tasks" }

// Treatment represents the treatments table
type Treatment struct {
	TreatmentID int `gorm:"column:TreatmentID;primaryKey;autoIncrement:false" json:"id"`
	AnimalID    int `gorm:"column:AnimalID;not null;index" json:"animal_id"`
	TaskID      int `gorm:"column:TaskID;not null" json:"task_id"`
	StartHour   int `gorm:"column:StartHour;not null" json:"start_hour"`
}

// TableName keeps the table name of the shelter database
func (Treatment) TableName() string { return "treatments" }

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Key        string         `gorm:"unique;not null" json:"-"`
	Name       string         `gorm:"not null" json:"name"`
	KeyPreview string         `json:"key_preview"`
	RateLimit  int            `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time      `json:"created_at"`
	LastUsed   *time.Time     `json:"last_used"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	KeyID           uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date            string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount    int    `gorm:"default:0" json:"request_count"`
	TotalItems      int    `gorm:"default:0" json:"total_items"`
	TotalVolunteers int    `gorm:"default:0" json:"total_volunteers"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Tables lists every model managed by Migrate
func Tables() []any {
	return []any{&Animal{}, &Task{}, &Treatment{}, &APIKey{}, &APIUsage{}, &MasterUser{}}
}

// InitDB opens postgres when a DSN is given, otherwise the sqlite file at path,
// and migrates the schema
func InitDB(dsn, path string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if dsn != "" {
		cfg.PrepareStmt = false
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(path), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
