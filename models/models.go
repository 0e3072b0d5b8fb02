// models/models.go - Core Models
package models

import (
	"encoding/json"
	"time"
)

// Scenario types
const (
	ScenarioTypeEmail = "email"
	ScenarioTypeURL   = "url"
)

// Scenario is a single simulated email or URL presented to a trainee.
// Scenarios are seeded at startup and read-only afterwards.
type Scenario struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Type            string `json:"type" gorm:"not null;size:20;index"`
	DifficultyLevel int    `json:"difficulty_level" gorm:"not null;default:1;index"`
	IsPhishing      bool   `json:"is_phishing" gorm:"not null"`

	// Display fields. Email scenarios use Subject/Body/Sender,
	// URL scenarios use URL; the rest stay empty.
	Subject string `json:"subject" gorm:"size:255"`
	Body    string `json:"body" gorm:"type:text"`
	Sender  string `json:"sender" gorm:"size:255"`
	URL     string `json:"url" gorm:"size:500"`

	// Indicators is a JSON-encoded list of strings explaining the
	// ground-truth label, shown to the user after they answer.
	Indicators string `json:"-" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
}

// IndicatorList decodes the stored indicator strings.
func (s Scenario) IndicatorList() []string {
	var out []string
	if s.Indicators == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s.Indicators), &out); err != nil {
		return nil
	}
	return out
}

// Attempt is an append-only record of one submission. Never updated.
type Attempt struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	User         *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ScenarioID   uint      `json:"scenario_id" gorm:"not null;index"`
	Scenario     *Scenario `json:"scenario,omitempty" gorm:"foreignKey:ScenarioID"`
	UserAnswer   bool      `json:"user_answer"`
	IsCorrect    bool      `json:"is_correct"`
	TimeTaken    int       `json:"time_taken" gorm:"default:0"` // in seconds
	PointsEarned int       `json:"points_earned" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStats holds per-user aggregate training statistics. One row per
// user, mutated only by the scoring engine, once per submission.
type UserStats struct {
	ID     uint  `json:"id" gorm:"primaryKey"`
	UserID uint  `json:"user_id" gorm:"not null;uniqueIndex"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	TotalAttempts      int     `json:"total_attempts" gorm:"default:0"`
	CorrectAttempts    int     `json:"correct_attempts" gorm:"default:0"`
	AccuracyPercentage float64 `json:"accuracy_percentage" gorm:"default:0"`
	CurrentStreak      int     `json:"current_streak" gorm:"default:0"`
	BestStreak         int     `json:"best_streak" gorm:"default:0"`
	ScenariosCompleted int     `json:"scenarios_completed" gorm:"default:0"`

	// Phishing outcome counters, mutually exclusive per submission.
	PhishingDetected int `json:"phishing_detected" gorm:"default:0"`
	PhishingMissed   int `json:"phishing_missed" gorm:"default:0"`
	FalsePositives   int `json:"false_positives" gorm:"default:0"`

	// ScenariosCompleted as of the most recent difficulty promotion.
	// A promotion consumes the qualifying state until the next
	// submission moves the counter.
	LastPromotionCompleted int `json:"-" gorm:"default:0"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName methods for custom table names
func (Scenario) TableName() string {
	return "scenarios"
}

func (Attempt) TableName() string {
	return "attempts"
}

func (UserStats) TableName() string {
	return "user_stats"
}
