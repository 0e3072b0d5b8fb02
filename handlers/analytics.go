// handlers/analytics.go - Per-user training analytics
package handlers

import (
	"errors"

	"phishguard/database"
	"phishguard/middleware"
	"phishguard/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DifficultyBreakdown struct {
	DifficultyLevel int     `json:"difficulty_level"`
	Attempts        int     `json:"attempts"`
	Correct         int     `json:"correct"`
	Accuracy        float64 `json:"accuracy"`
}

// GetUserAnalytics returns the user's aggregate statistics, their 20
// most recent attempts and a per-difficulty correctness breakdown.
func GetUserAnalytics(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "User not authenticated"})
	}

	db := database.GetDB()

	var stats models.UserStats
	if err := db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch statistics"})
		}
		// No submissions yet; report zeroed statistics.
		stats = models.UserStats{UserID: userID}
	}

	var recent []models.Attempt
	if err := db.Preload("Scenario").Where("user_id = ?", userID).
		Order("created_at DESC").Limit(20).Find(&recent).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attempts"})
	}

	var breakdown []DifficultyBreakdown
	db.Raw(`
		SELECT
			s.difficulty_level,
			COUNT(*) as attempts,
			SUM(CASE WHEN a.is_correct THEN 1 ELSE 0 END) as correct,
			CAST(SUM(CASE WHEN a.is_correct THEN 1 ELSE 0 END) AS FLOAT) / COUNT(*) * 100 as accuracy
		FROM attempts a
		JOIN scenarios s ON s.id = a.scenario_id
		WHERE a.user_id = ?
		GROUP BY s.difficulty_level
		ORDER BY s.difficulty_level
	`, userID).Scan(&breakdown)

	attempts := make([]fiber.Map, 0, len(recent))
	for _, a := range recent {
		entry := fiber.Map{
			"scenario_id":   a.ScenarioID,
			"user_answer":   a.UserAnswer,
			"is_correct":    a.IsCorrect,
			"time_taken":    a.TimeTaken,
			"points_earned": a.PointsEarned,
			"created_at":    a.CreatedAt,
		}
		if a.Scenario != nil {
			entry["scenario_type"] = a.Scenario.Type
			entry["difficulty_level"] = a.Scenario.DifficultyLevel
		}
		attempts = append(attempts, entry)
	}

	return c.JSON(fiber.Map{
		"success":              true,
		"statistics":           stats,
		"recent_attempts":      attempts,
		"difficulty_breakdown": breakdown,
	})
}
