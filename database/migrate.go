// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"phishguard/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Scenario{},
		&models.UserStats{},
		&models.Attempt{},
		&models.Achievement{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("Migrations completed")
}

func createIndexes() {
	db := GetDB()

	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_total_points ON users(total_points DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_scenarios_difficulty ON scenarios(difficulty_level)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_attempts_user_created ON attempts(user_id, created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id)")
}
