// handlers/training.go - Training round endpoints
package handlers

import (
	"errors"
	"strings"

	"phishguard/database"
	"phishguard/middleware"
	"phishguard/models"
	"phishguard/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ScenarioView is a scenario with the ground-truth label detached.
// The label is only consulted at submission time.
type ScenarioView struct {
	ID              uint   `json:"id"`
	Type            string `json:"type"`
	DifficultyLevel int    `json:"difficulty_level"`
	Subject         string `json:"subject,omitempty"`
	Body            string `json:"body,omitempty"`
	Sender          string `json:"sender,omitempty"`
	URL             string `json:"url,omitempty"`
}

type SubmitRequest struct {
	ScenarioID *uint `json:"scenario_id"`
	UserAnswer *bool `json:"user_answer"`
	TimeTaken  *int  `json:"time_taken"`
}

// GetNextScenario returns the next training scenario for the user.
// Difficulty promotion is evaluated first, on the statistics as they
// stood after the previous submission.
func GetNextScenario(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "User not authenticated"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var stats models.UserStats
	if err := db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		// No stats row yet just means no submissions; anything else is
		// a storage failure and must not feed zeroed statistics into
		// the difficulty controller.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to load statistics"})
		}
		stats = models.UserStats{UserID: userID}
	}

	newLevel := services.MaybePromote(stats, user.DifficultyLevel, services.MaxDifficulty)
	if newLevel != user.DifficultyLevel {
		user.DifficultyLevel = newLevel
		if err := db.Model(&user).Update("difficulty_level", newLevel).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update difficulty"})
		}
		// Consume the qualifying state so a second selection call with
		// unchanged statistics does not promote again.
		if err := db.Model(&stats).Update("last_promotion_completed", stats.ScenariosCompleted).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update difficulty"})
		}
	}

	var recentIDs []uint
	db.Model(&models.Attempt{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(services.RecentWindow).
		Pluck("scenario_id", &recentIDs)

	var pool []models.Scenario
	if err := db.Where("difficulty_level = ?", user.DifficultyLevel).Find(&pool).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load scenarios"})
	}

	scenario, err := services.NextScenario(pool, recentIDs)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "No scenarios available for your difficulty level"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"scenario": ScenarioView{
			ID:              scenario.ID,
			Type:            scenario.Type,
			DifficultyLevel: scenario.DifficultyLevel,
			Subject:         scenario.Subject,
			Body:            scenario.Body,
			Sender:          scenario.Sender,
			URL:             scenario.URL,
		},
		"difficulty": user.DifficultyLevel,
	})
}

// SubmitScenario scores one answer. The attempt record, statistics
// update, point award and achievement unlocks commit atomically.
func SubmitScenario(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "User not authenticated"})
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var missing []string
	if req.ScenarioID == nil {
		missing = append(missing, "scenario_id")
	}
	if req.UserAnswer == nil {
		missing = append(missing, "user_answer")
	}
	if req.TimeTaken == nil {
		missing = append(missing, "time_taken")
	}
	if len(missing) > 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "Missing required fields: " + strings.Join(missing, ", "),
		})
	}

	db := database.GetDB()

	result, err := services.SubmitAnswer(db, userID, *req.ScenarioID, *req.UserAnswer, *req.TimeTaken)
	if err != nil {
		if errors.Is(err, services.ErrScenarioNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Scenario not found"})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record submission"})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"is_correct":     result.IsCorrect,
		"points_earned":  result.PointsEarned,
		"correct_answer": result.Scenario.IsPhishing,
		"explanation": fiber.Map{
			"subject":    result.Scenario.Subject,
			"sender":     result.Scenario.Sender,
			"url":        result.Scenario.URL,
			"indicators": result.Scenario.IndicatorList(),
		},
		"statistics": fiber.Map{
			"current_streak":      result.Stats.CurrentStreak,
			"accuracy":            result.Stats.AccuracyPercentage,
			"scenarios_completed": result.Stats.ScenariosCompleted,
		},
		"new_achievements": result.NewAchievements,
	})
}
