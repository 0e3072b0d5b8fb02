// services/scoring.go - Scoring, statistics and achievement evaluation
package services

import (
	"errors"
	"time"

	"phishguard/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrUserNotFound     = errors.New("user not found")
)

// SubmitResult is the outcome of one scored submission.
type SubmitResult struct {
	IsCorrect       bool
	PointsEarned    int
	Scenario        models.Scenario
	Stats           models.UserStats
	NewAchievements []models.Achievement
}

// Evaluate applies the scoring rules to one answer and returns the
// correctness, points earned and the updated statistics. Pure function
// of its inputs; persistence happens in SubmitAnswer.
func Evaluate(scenario models.Scenario, userAnswer bool, timeTaken int, prior models.UserStats) (bool, int, models.UserStats) {
	isCorrect := userAnswer == scenario.IsPhishing

	points := 0
	if isCorrect {
		points = scenario.DifficultyLevel * 10
		// Speed bonus, only for answers under 100 seconds.
		if timeTaken < 100 {
			bonus := 10 - timeTaken/10
			if bonus > 0 {
				points += bonus
			}
		}
	}

	stats := prior
	stats.TotalAttempts++
	if isCorrect {
		stats.CorrectAttempts++
		stats.CurrentStreak++
	} else {
		stats.CurrentStreak = 0
	}
	if stats.CurrentStreak > stats.BestStreak {
		stats.BestStreak = stats.CurrentStreak
	}
	stats.AccuracyPercentage = float64(stats.CorrectAttempts) / float64(stats.TotalAttempts) * 100
	stats.ScenariosCompleted++

	// Exactly one of the three counters moves per submission.
	if scenario.IsPhishing {
		if userAnswer {
			stats.PhishingDetected++
		} else {
			stats.PhishingMissed++
		}
	} else if userAnswer {
		stats.FalsePositives++
	}

	return isCorrect, points, stats
}

// SubmitAnswer scores one submission and applies it as a single
// transaction: the attempt insert, statistics update, point award and
// any achievement unlocks commit together. The user's stats row is
// locked for the duration so concurrent submissions from the same user
// serialize instead of losing updates.
func SubmitAnswer(db *gorm.DB, userID, scenarioID uint, userAnswer bool, timeTaken int) (*SubmitResult, error) {
	var scenario models.Scenario
	if err := db.First(&scenario, scenarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScenarioNotFound
		}
		return nil, err
	}

	var result *SubmitResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// Row lock serializes concurrent submissions from one user.
		// sqlite has no FOR UPDATE; its single-writer model covers it.
		statsQuery := tx.Where("user_id = ?", userID)
		if tx.Dialector.Name() == "postgres" {
			statsQuery = statsQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var stats models.UserStats
		err := statsQuery.First(&stats).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = models.UserStats{UserID: userID}
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		isCorrect, points, updated := Evaluate(scenario, userAnswer, timeTaken, stats)

		if err := tx.Save(&updated).Error; err != nil {
			return err
		}

		attempt := models.Attempt{
			UserID:       userID,
			ScenarioID:   scenarioID,
			UserAnswer:   userAnswer,
			IsCorrect:    isCorrect,
			TimeTaken:    timeTaken,
			PointsEarned: points,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		user.TotalPoints += points
		if err := tx.Model(&user).Update("total_points", user.TotalPoints).Error; err != nil {
			return err
		}

		newAchievements, err := EvaluateAchievements(tx, user, updated)
		if err != nil {
			return err
		}

		result = &SubmitResult{
			IsCorrect:       isCorrect,
			PointsEarned:    points,
			Scenario:        scenario,
			Stats:           updated,
			NewAchievements: newAchievements,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// EvaluateAchievements unlocks every not-yet-earned achievement whose
// metric has reached its threshold. Unlocks are write-once per (user,
// achievement); the returned slice preserves definition order.
func EvaluateAchievements(tx *gorm.DB, user models.User, stats models.UserStats) ([]models.Achievement, error) {
	var defs []models.Achievement
	if err := tx.Order("id").Find(&defs).Error; err != nil {
		return nil, err
	}

	var earnedIDs []uint
	if err := tx.Model(&models.UserAchievement{}).
		Where("user_id = ?", user.ID).
		Pluck("achievement_id", &earnedIDs).Error; err != nil {
		return nil, err
	}

	earned := make(map[uint]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	newAchievements := []models.Achievement{}
	for _, def := range defs {
		if earned[def.ID] {
			continue
		}
		if !criteriaMet(def, user, stats) {
			continue
		}

		unlock := models.UserAchievement{
			UserID:        user.ID,
			AchievementID: def.ID,
			UnlockedAt:    time.Now(),
		}
		if err := tx.Create(&unlock).Error; err != nil {
			return nil, err
		}
		newAchievements = append(newAchievements, def)
	}

	return newAchievements, nil
}

func criteriaMet(def models.Achievement, user models.User, stats models.UserStats) bool {
	switch def.CriteriaType {
	case models.CriteriaPoints:
		return user.TotalPoints >= def.Threshold
	case models.CriteriaAccuracy:
		return stats.AccuracyPercentage >= float64(def.Threshold)
	case models.CriteriaStreak:
		return stats.CurrentStreak >= def.Threshold
	case models.CriteriaScenariosCompleted:
		return stats.ScenariosCompleted >= def.Threshold
	case models.CriteriaPhishingDetected:
		return stats.PhishingDetected >= def.Threshold
	}
	return false
}
