// services/training.go - Scenario selection and adaptive difficulty
package services

import (
	"errors"
	"math/rand"

	"phishguard/models"
)

// MaxDifficulty is the highest training tier.
const MaxDifficulty = 3

// RecentWindow is how many of the user's most recent scenarios the
// selector tries to avoid repeating.
const RecentWindow = 5

// ErrNoScenarios is returned when a difficulty tier has no scenarios.
var ErrNoScenarios = errors.New("no scenarios available for this difficulty")

// NextScenario picks a uniformly-random scenario from pool, preferring
// ones outside the caller's recent history. Recency is a soft
// exclusion: if every scenario in the pool was seen recently, any
// scenario from the pool may be returned.
func NextScenario(pool []models.Scenario, recentIDs []uint) (models.Scenario, error) {
	if len(pool) == 0 {
		return models.Scenario{}, ErrNoScenarios
	}

	recent := make(map[uint]bool, len(recentIDs))
	for _, id := range recentIDs {
		recent[id] = true
	}

	fresh := make([]models.Scenario, 0, len(pool))
	for _, s := range pool {
		if !recent[s.ID] {
			fresh = append(fresh, s)
		}
	}

	if len(fresh) == 0 {
		fresh = pool
	}

	return fresh[rand.Intn(len(fresh))], nil
}

// MaybePromote returns the user's new difficulty tier given their
// statistics as of the previous submission. Promotion is by exactly
// one tier, never past maxLevel, and only once per qualifying state:
// after a promotion the caller records stats.LastPromotionCompleted,
// so repeated calls with unchanged statistics return the same tier.
func MaybePromote(stats models.UserStats, currentLevel, maxLevel int) int {
	if currentLevel >= maxLevel {
		return currentLevel
	}
	if stats.ScenariosCompleted <= 10 || stats.AccuracyPercentage <= 80 {
		return currentLevel
	}
	if stats.ScenariosCompleted == stats.LastPromotionCompleted {
		return currentLevel
	}
	return currentLevel + 1
}
