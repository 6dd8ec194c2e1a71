package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`

	// Revoked keys keep their row so a valid signature cannot re-register them
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// APIUsage represents the api_usage table, one row per key per day
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalHours   int    `gorm:"default:0" json:"total_hours"`
	TotalStaff   int    `gorm:"default:0" json:"total_staff"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScheduleRun stores the summary and full result of one optimisation
type ScheduleRun struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	KeyID             uint      `gorm:"index" json:"key_id"`
	Source            string    `gorm:"size:16" json:"source"`
	Hours             int       `json:"hours"`
	StaffCount        int       `json:"staff_count"`
	ShiftCount        int       `json:"shift_count"`
	TotalCost         float64   `json:"total_cost"`
	MaxUnderstaffing  int       `json:"max_understaffing"`
	UnderstaffedHours int       `json:"understaffed_hours"`
	AvgCoverageRatio  float64   `json:"avg_coverage_ratio"`
	FairnessScore     float64   `json:"fairness_score"`
	Result            string    `gorm:"type:text" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID to runs that do not have one yet
func (r *ScheduleRun) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Open connects to Postgres when databaseURL is set and falls back to a SQLite
// file at dataPath otherwise. The schema is migrated before returning. gorm
// logs go to log; nil silences them.
func Open(databaseURL, dataPath string, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	cfg := &gorm.Config{Logger: NewLogger(log)}
	if databaseURL != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		})
		cfg.PrepareStmt = false
	} else {
		dialector = sqlite.Open(dataPath)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates all tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &ScheduleRun{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
