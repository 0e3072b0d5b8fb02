// services/cleanup.go - Stale guest account cleanup
package services

import (
	"log"
	"time"

	"phishguard/database"
	"phishguard/models"
)

// CleanupService removes abandoned guest accounts on demand.
type CleanupService struct{}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService() {
	cleanupService = &CleanupService{}
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// CleanupStaleGuests deletes guest accounts older than maxAge that
// never submitted an attempt. Triggered manually via the admin API;
// there is no background schedule.
func (s *CleanupService) CleanupStaleGuests(maxAge time.Duration) (int64, error) {
	db := database.GetDB()
	cutoff := time.Now().Add(-maxAge)

	var stale []models.User
	if err := db.Where("is_guest = ? AND created_at < ? AND id NOT IN (SELECT DISTINCT user_id FROM attempts)",
		true, cutoff).Find(&stale).Error; err != nil {
		log.Printf("Error finding stale guest accounts: %v", err)
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]uint, len(stale))
	for i, u := range stale {
		ids[i] = u.ID
	}

	if err := db.Where("user_id IN ?", ids).Delete(&models.UserStats{}).Error; err != nil {
		log.Printf("Error deleting stale guest stats: %v", err)
		return 0, err
	}
	if err := db.Delete(&stale).Error; err != nil {
		log.Printf("Error deleting stale guest accounts: %v", err)
		return 0, err
	}

	log.Printf("Cleaned up %d stale guest accounts", len(stale))
	return int64(len(stale)), nil
}
