// handlers/leaderboard.go
package handlers

import (
	"strconv"

	"phishguard/database"
	"phishguard/models"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardEntry struct {
	UserID          uint   `json:"user_id"`
	Username        string `json:"username"`
	TotalPoints     int    `json:"total_points"`
	DifficultyLevel int    `json:"difficulty_level"`
}

// GetLeaderboard returns the top-N users by total points.
// GET /api/leaderboard?limit=10
func GetLeaderboard(c *fiber.Ctx) error {
	limit := parseIntDefault(c.Query("limit"), 10)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	db := database.GetDB()

	var users []models.User
	if err := db.Order("total_points DESC, id ASC").Limit(limit).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			UserID:          u.ID,
			Username:        u.Username,
			TotalPoints:     u.TotalPoints,
			DifficultyLevel: u.DifficultyLevel,
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"leaderboard": entries,
		"limit":       limit,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
