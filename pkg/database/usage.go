package database

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Today returns the usage bucket for t
func Today(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// RecordUsage adds one request to the key's bucket for day with a single upsert
// (supported by both Postgres and SQLite)
func RecordUsage(db *gorm.DB, keyID uint, day string, hours, staff int) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_hours":   gorm.Expr("total_hours + ?", hours),
			"total_staff":   gorm.Expr("total_staff + ?", staff),
		}),
	}).Create(&APIUsage{
		KeyID:        keyID,
		Date:         day,
		RequestCount: 1,
		TotalHours:   hours,
		TotalStaff:   staff,
	}).Error
}

// RequestsOn returns how many requests the key made on day
func RequestsOn(db *gorm.DB, keyID uint, day string) (int, error) {
	var usage APIUsage
	err := db.Where("key_id = ? AND date = ?", keyID, day).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return usage.RequestCount, nil
}

// UsageHistory returns up to limit daily buckets for a key, newest first
func UsageHistory(db *gorm.DB, keyID uint, limit int) ([]APIUsage, error) {
	var usage []APIUsage
	err := db.Where("key_id = ?", keyID).Order("date desc").Limit(limit).Find(&usage).Error
	return usage, err
}

// ErrKeyRevoked is returned for keys an admin has revoked
var ErrKeyRevoked = errors.New("api key revoked")

// TouchKey finds or creates the record for an API key and stamps its last use.
// Revoked keys are found too and rejected with ErrKeyRevoked.
func TouchKey(db *gorm.DB, key, name string, rateLimit int, now time.Time) (*APIKey, error) {
	apiKey := APIKey{}
	err := db.Unscoped().Where(APIKey{Key: key}).Attrs(APIKey{
		Name:       name,
		KeyPreview: Preview(key),
		RateLimit:  rateLimit,
	}).FirstOrCreate(&apiKey).Error
	if err != nil {
		return nil, err
	}
	if apiKey.DeletedAt.Valid {
		return nil, ErrKeyRevoked
	}
	if err := db.Model(&apiKey).Update("last_used", now).Error; err != nil {
		return nil, err
	}
	return &apiKey, nil
}

// Preview masks a key for display, e.g. "nur...9f2c"
func Preview(key string) string {
	if len(key) > 8 {
		return key[:3] + "..." + key[len(key)-4:]
	}
	return "****"
}
