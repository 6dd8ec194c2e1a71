package database

import (
	"gorm.io/gorm"
)

// SaveRun persists a schedule run, assigning its ID
func SaveRun(db *gorm.DB, run *ScheduleRun) error {
	return db.Create(run).Error
}

// ListRuns returns the most recent runs for a key
func ListRuns(db *gorm.DB, keyID uint, limit int) ([]ScheduleRun, error) {
	var runs []ScheduleRun
	err := db.Where("key_id = ?", keyID).Order("created_at desc").Limit(limit).Find(&runs).Error
	return runs, err
}

// GetRun loads one run owned by keyID. It returns gorm.ErrRecordNotFound when
// the run does not exist or belongs to another key.
func GetRun(db *gorm.DB, keyID uint, id string) (*ScheduleRun, error) {
	var run ScheduleRun
	if err := db.Where("id = ? AND key_id = ?", id, keyID).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
