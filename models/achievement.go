// models/achievement.go
package models

import "time"

// Achievement criteria types
const (
	CriteriaPoints             = "points"
	CriteriaAccuracy           = "accuracy"
	CriteriaStreak             = "streak"
	CriteriaScenariosCompleted = "scenarios_completed"
	CriteriaPhishingDetected   = "phishing_detected"
)

type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Icon        string `json:"icon"`

	// CriteriaType is one of the Criteria* constants; the achievement
	// unlocks once the matching metric reaches Threshold.
	CriteriaType string `gorm:"not null;index" json:"criteria_type"`
	Threshold    int    `gorm:"not null" json:"threshold"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
