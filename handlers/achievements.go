// handlers/achievements.go
package handlers

import (
	"phishguard/database"
	"phishguard/middleware"
	"phishguard/models"

	"github.com/gofiber/fiber/v2"
)

// GetAchievements returns every achievement definition together with
// the user's unlock state.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "User not authenticated"})
	}

	db := database.GetDB()

	var earned []models.UserAchievement
	if err := db.Preload("Achievement").Where("user_id = ?", userID).
		Order("unlocked_at DESC").Find(&earned).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	var all []models.Achievement
	if err := db.Order("id").Find(&all).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	earnedMap := make(map[uint]models.UserAchievement, len(earned))
	for _, ua := range earned {
		earnedMap[ua.AchievementID] = ua
	}

	achievements := make([]fiber.Map, 0, len(all))
	for _, a := range all {
		entry := fiber.Map{
			"id":            a.ID,
			"name":          a.Name,
			"description":   a.Description,
			"icon":          a.Icon,
			"criteria_type": a.CriteriaType,
			"threshold":     a.Threshold,
			"unlocked":      false,
		}
		if ua, ok := earnedMap[a.ID]; ok {
			entry["unlocked"] = true
			entry["unlocked_at"] = ua.UnlockedAt
		}
		achievements = append(achievements, entry)
	}

	return c.JSON(fiber.Map{
		"success":             true,
		"all_achievements":    achievements,
		"earned_achievements": earned,
		"total":               len(all),
		"unlocked":            len(earned),
	})
}
