// handlers/admin.go - Admin maintenance endpoints
package handlers

import (
	"time"

	"phishguard/services"

	"github.com/gofiber/fiber/v2"
)

// ManualCleanup removes stale guest accounts on demand.
// POST /api/admin/cleanup?max_age_days=30
func ManualCleanup(c *fiber.Ctx) error {
	maxAgeDays := parseIntDefault(c.Query("max_age_days"), 30)
	if maxAgeDays < 1 {
		maxAgeDays = 1
	}

	svc := services.GetCleanupService()
	if svc == nil {
		return c.Status(500).JSON(fiber.Map{"error": "Cleanup service not available"})
	}

	removed, err := svc.CleanupStaleGuests(time.Duration(maxAgeDays) * 24 * time.Hour)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Cleanup failed"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"removed":      removed,
		"max_age_days": maxAgeDays,
	})
}
