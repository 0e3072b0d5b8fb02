package services

import (
	"math"
	"testing"

	"phishguard/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Scenario{},
		&models.UserStats{},
		&models.Attempt{},
		&models.Achievement{},
		&models.UserAchievement{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestEvaluatePoints(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		isPhishing bool
		answer     bool
		timeTaken  int
		wantPoints int
	}{
		{"wrong answer earns nothing", 3, true, false, 5, 0},
		{"fast answer full bonus", 1, true, true, 5, 20},
		{"bonus shrinks with time", 1, true, true, 45, 16},
		{"bonus floor at 95s", 1, true, true, 95, 11},
		{"no bonus at 100s", 2, true, true, 100, 20},
		{"no bonus past guard", 2, true, true, 500, 20},
		{"tier scales base", 3, false, false, 10, 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := models.Scenario{DifficultyLevel: tt.difficulty, IsPhishing: tt.isPhishing}
			isCorrect, points, _ := Evaluate(scenario, tt.answer, tt.timeTaken, models.UserStats{})

			if points != tt.wantPoints {
				t.Errorf("points = %d, expected %d (correct=%v)", points, tt.wantPoints, isCorrect)
			}
			if isCorrect != (tt.answer == tt.isPhishing) {
				t.Errorf("isCorrect = %v for answer=%v truth=%v", isCorrect, tt.answer, tt.isPhishing)
			}
		})
	}
}

func TestEvaluateStreakLaw(t *testing.T) {
	// currentStreak must equal the trailing run of corrects and
	// bestStreak must never decrease, over any outcome sequence.
	sequence := []bool{true, true, false, true, true, true, false, false, true}

	scenarioRight := models.Scenario{DifficultyLevel: 1, IsPhishing: true}
	stats := models.UserStats{}
	prevBest := 0
	trailing := 0

	for i, correct := range sequence {
		answer := correct // scenario truth is "phishing", answer matches iff correct
		_, _, stats = Evaluate(scenarioRight, answer, 10, stats)

		if correct {
			trailing++
		} else {
			trailing = 0
		}

		if stats.CurrentStreak != trailing {
			t.Errorf("step %d: currentStreak = %d, expected %d", i, stats.CurrentStreak, trailing)
		}
		if stats.BestStreak < prevBest {
			t.Errorf("step %d: bestStreak decreased from %d to %d", i, prevBest, stats.BestStreak)
		}
		prevBest = stats.BestStreak

		wantAccuracy := float64(stats.CorrectAttempts) / float64(stats.TotalAttempts) * 100
		if math.Abs(stats.AccuracyPercentage-wantAccuracy) > 1e-9 {
			t.Errorf("step %d: accuracy = %f, expected %f", i, stats.AccuracyPercentage, wantAccuracy)
		}
	}

	if stats.BestStreak != 3 {
		t.Errorf("bestStreak = %d, expected 3", stats.BestStreak)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("currentStreak = %d, expected 1", stats.CurrentStreak)
	}
}

func TestEvaluateCounterExclusivity(t *testing.T) {
	tests := []struct {
		name         string
		isPhishing   bool
		answer       bool
		wantDetected int
		wantMissed   int
		wantFalsePos int
	}{
		{"phishing caught", true, true, 1, 0, 0},
		{"phishing missed", true, false, 0, 1, 0},
		{"false positive", false, true, 0, 0, 1},
		{"legitimate confirmed", false, false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := models.Scenario{DifficultyLevel: 1, IsPhishing: tt.isPhishing}
			_, _, stats := Evaluate(scenario, tt.answer, 10, models.UserStats{})

			if stats.PhishingDetected != tt.wantDetected ||
				stats.PhishingMissed != tt.wantMissed ||
				stats.FalsePositives != tt.wantFalsePos {
				t.Errorf("counters = (%d, %d, %d), expected (%d, %d, %d)",
					stats.PhishingDetected, stats.PhishingMissed, stats.FalsePositives,
					tt.wantDetected, tt.wantMissed, tt.wantFalsePos)
			}
		})
	}
}

func TestSubmitAnswerTransaction(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Username: "trainee", Password: "x", DifficultyLevel: 1}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	scenario := models.Scenario{
		Type:            models.ScenarioTypeEmail,
		DifficultyLevel: 2,
		IsPhishing:      true,
		Subject:         "Your account has been suspended",
	}
	if err := db.Create(&scenario).Error; err != nil {
		t.Fatalf("Failed to create scenario: %v", err)
	}

	result, err := SubmitAnswer(db, user.ID, scenario.ID, true, 15)
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	if !result.IsCorrect {
		t.Error("Expected correct answer")
	}
	// difficulty 2 * 10 + (10 - 15/10) bonus
	if result.PointsEarned != 29 {
		t.Errorf("PointsEarned = %d, expected 29", result.PointsEarned)
	}

	var stats models.UserStats
	if err := db.Where("user_id = ?", user.ID).First(&stats).Error; err != nil {
		t.Fatalf("Stats row missing: %v", err)
	}
	if stats.TotalAttempts != 1 || stats.CorrectAttempts != 1 || stats.CurrentStreak != 1 {
		t.Errorf("Persisted stats wrong: %+v", stats)
	}
	if stats.PhishingDetected != 1 {
		t.Errorf("PhishingDetected = %d, expected 1", stats.PhishingDetected)
	}

	var attemptCount int64
	db.Model(&models.Attempt{}).Where("user_id = ?", user.ID).Count(&attemptCount)
	if attemptCount != 1 {
		t.Errorf("Attempt count = %d, expected 1", attemptCount)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if reloaded.TotalPoints != 29 {
		t.Errorf("TotalPoints = %d, expected 29", reloaded.TotalPoints)
	}
}

func TestSubmitAnswerUnknownScenario(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Username: "trainee", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	_, err := SubmitAnswer(db, user.ID, 9999, true, 10)
	if err != ErrScenarioNotFound {
		t.Errorf("Expected ErrScenarioNotFound, got %v", err)
	}
}

func TestAchievementWriteOnce(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Username: "trainee", Password: "x", DifficultyLevel: 1}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	scenario := models.Scenario{Type: models.ScenarioTypeURL, DifficultyLevel: 1, IsPhishing: true}
	if err := db.Create(&scenario).Error; err != nil {
		t.Fatalf("Failed to create scenario: %v", err)
	}
	achievement := models.Achievement{
		Name:         "First Catch",
		Description:  "Earn your first points",
		CriteriaType: models.CriteriaPoints,
		Threshold:    10,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("Failed to create achievement: %v", err)
	}

	first, err := SubmitAnswer(db, user.ID, scenario.ID, true, 5)
	if err != nil {
		t.Fatalf("First submission failed: %v", err)
	}
	if len(first.NewAchievements) != 1 || first.NewAchievements[0].Name != "First Catch" {
		t.Fatalf("Expected First Catch unlock, got %+v", first.NewAchievements)
	}

	// Threshold stays crossed; the unlock must not repeat.
	second, err := SubmitAnswer(db, user.ID, scenario.ID, true, 5)
	if err != nil {
		t.Fatalf("Second submission failed: %v", err)
	}
	if len(second.NewAchievements) != 0 {
		t.Errorf("Achievement unlocked twice: %+v", second.NewAchievements)
	}

	var junctionCount int64
	db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&junctionCount)
	if junctionCount != 1 {
		t.Errorf("Junction rows = %d, expected exactly 1", junctionCount)
	}
}

func TestAchievementDefinitionOrder(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Username: "trainee", Password: "x", TotalPoints: 500}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	defs := []models.Achievement{
		{Name: "Point Collector", Description: "100 points", CriteriaType: models.CriteriaPoints, Threshold: 100},
		{Name: "Hot Streak", Description: "Streak of 3", CriteriaType: models.CriteriaStreak, Threshold: 3},
		{Name: "Point Hoarder", Description: "500 points", CriteriaType: models.CriteriaPoints, Threshold: 500},
	}
	for i := range defs {
		if err := db.Create(&defs[i]).Error; err != nil {
			t.Fatalf("Failed to create achievement: %v", err)
		}
	}

	stats := models.UserStats{UserID: user.ID, CurrentStreak: 5}
	earned, err := EvaluateAchievements(db, user, stats)
	if err != nil {
		t.Fatalf("EvaluateAchievements failed: %v", err)
	}

	want := []string{"Point Collector", "Hot Streak", "Point Hoarder"}
	if len(earned) != len(want) {
		t.Fatalf("Earned %d achievements, expected %d", len(earned), len(want))
	}
	for i, name := range want {
		if earned[i].Name != name {
			t.Errorf("earned[%d] = %q, expected %q", i, earned[i].Name, name)
		}
	}
}
