// database/seed.go - Seed data for scenarios and achievements
package database

import (
	"encoding/json"
	"log"

	"phishguard/models"

	"gorm.io/gorm"
)

// SeedData loads the scenario pool and achievement definitions if the
// tables are empty. Both are read-only after startup.
func SeedData(db *gorm.DB) {
	seedScenarios(db)
	seedAchievements(db)
}

func indicatorsJSON(indicators ...string) string {
	data, _ := json.Marshal(indicators)
	return string(data)
}

func seedScenarios(db *gorm.DB) {
	var count int64
	db.Model(&models.Scenario{}).Count(&count)
	if count > 0 {
		return
	}

	scenarios := []models.Scenario{
		// Tier 1 - obvious cases
		{
			Type:            models.ScenarioTypeEmail,
			DifficultyLevel: 1,
			IsPhishing:      true,
			Subject:         "URGENT: Your account has been suspended!",
			Body:            "Dear user, your account will be terminated within 24 hours. Click here immediately to verify your identity and restore access.",
			Sender:          "security@account-services.xyz",
			Indicators: indicatorsJSON(
				"Urgent language pressuring immediate action",
				"Generic greeting instead of your name",
				"Threat of account termination",
				"Sender domain uses a suspicious extension (.xyz)",
			),
		},
		{
			Type:            models.ScenarioTypeEmail,
			DifficultyLevel: 1,
			IsPhishing:      true,
			Subject:         "Congratulations! You won a $1,000 gift card",
			Body:            "Dear customer, you have been selected to receive a free $1,000 prize. Claim your reward now before it expires!",
			Sender:          "rewards@prize-claim.win",
			Indicators: indicatorsJSON(
				"Too-good-to-be-true prize offer",
				"Generic greeting instead of your name",
				"Artificial deadline to rush your decision",
				"Sender domain uses a suspicious extension (.win)",
			),
		},
		{
			Type:            models.ScenarioTypeEmail,
			DifficultyLevel: 1,
			IsPhishing:      false,
			Subject:         "Your March invoice is ready",
			Body:            "Hi Jordan, your invoice for March is attached. Payment is due on the usual schedule. Reply here if anything looks off.",
			Sender:          "billing@acme-hosting.com",
			Indicators: indicatorsJSON(
				"Addressed to you by name",
				"No urgency or threats",
				"Sender matches a service you use",
			),
		},
		{
			Type:            models.ScenarioTypeURL,
			DifficultyLevel: 1,
			IsPhishing:      true,
			URL:             "http://192.168.4.22/secure-login/verify",
			Indicators: indicatorsJSON(
				"IP address used instead of a domain name",
				"No HTTPS encryption",
				"Login page reached via 'verify' link",
			),
		},
		{
			Type:            models.ScenarioTypeURL,
			DifficultyLevel: 1,
			IsPhishing:      false,
			URL:             "https://github.com/login",
			Indicators: indicatorsJSON(
				"HTTPS with the genuine github.com domain",
				"No extra subdomains or substituted characters",
			),
		},
		// Tier 2 - requires a closer look
		{
			Type:            models.ScenarioTypeEmail,
			DifficultyLevel: 2,
			IsPhishing:      true,
			Subject:         "Action required: unusual sign-in activity",
			Body:            "We noticed a sign-in from a new device. If this wasn't you, verify your account now to avoid it being locked. The link expires in 12 hours.",
			Sender:          "no-reply@microsoftsupport-alerts.com",
			Indicators: indicatorsJSON(
				"Sender domain imitates Microsoft but is not microsoft.com",
				"Deadline pressure ('expires in 12 hours')",
				"Threat of the account being locked",
			),
		},
		{
			Type:            models.ScenarioTypeEmail,
			DifficultyLevel: 2,
			IsPhishing:      false,
			Subject:         "Security alert: new sign-in on Chrome",
			Body:            "Hi Alex, we noticed a new sign-in to your account on a Windows device. If this was you, no action is needed. If not, you can review your account activity from settings.",
			Sender:          "no-reply@accounts.google.com",
			Indicators: indicatorsJSON(
				"Addressed to you by name",
				"No link demanding credentials, points to settings instead",
				"Sender is the genuine accounts.google.com",
			),
		},
		{
			Type:            models.ScenarioTypeURL,
			DifficultyLevel: 2,
			IsPhishing:      true,
			URL:             "https://amazon-account-update-billing.support-center.click/signin",
			Indicators: indicatorsJSON(
				"Brand name buried in a longer hyphenated domain",
				"Suspicious domain extension (.click)",
				"Multiple hyphens in the domain",
			),
		},
		{
			Type:            models.ScenarioTypeURL,
			DifficultyLevel: 2,
			IsPhishing:      false,
			URL:             "https://www.amazon.com/gp/css/order-history",
			Indicators: indicatorsJSON(
				"Genuine amazon.com domain",
				"Long path is normal; the domain is what matters",
			),
		},
		{
			Type:            models.ScenarioTypeEmail,
			DifficultyLevel: 2,
			IsPhishing:      true,
			Subject:         "Payroll update required before Friday",
			Body:            "Dear user, HR is updating the payroll system. Confirm your bank details using the secure portal below or your next payment may be disabled.",
			Sender:          "hr-payroll@company-portal.work",
			Indicators: indicatorsJSON(
				"Requests bank details by email",
				"Generic greeting from your own 'HR'",
				"Threat that payment will be disabled",
				"Sender domain uses a suspicious extension (.work)",
			),
		},
		// Tier 3 - subtle cases
		{
			Type:            models.ScenarioTypeURL,
			DifficultyLevel: 3,
			IsPhishing:      true,
			URL:             "https://faceb00k.com/security/checkpoint",
			Indicators: indicatorsJSON(
				"Zeros substituted for letters in the domain (faceb00k)",
				"Typosquatting of facebook.com",
			),
		},
		{
			Type:            models.ScenarioTypeURL,
			DifficultyLevel: 3,
			IsPhishing:      true,
			URL:             "https://login.micr0soft.com.session-check.account-verify.net/oauth",
			Indicators: indicatorsJSON(
				"Real-looking brand is only a subdomain; the registered domain is account-verify.net",
				"Zero substituted for 'o' in micr0soft",
				"Excessive subdomain nesting",
			),
		},
		{
			Type:            models.ScenarioTypeURL,
			DifficultyLevel: 3,
			IsPhishing:      false,
			URL:             "https://docs.github.com/en/authentication/securing-your-account",
			Indicators: indicatorsJSON(
				"Genuine github.com registered domain",
				"Security-themed words in a path are fine on a trusted domain",
			),
		},
		{
			Type:            models.ScenarioTypeEmail,
			DifficultyLevel: 3,
			IsPhishing:      true,
			Subject:         "Re: Q3 vendor contract",
			Body:            "Hi, following up on the contract we discussed. The updated payment instructions are attached - please use the new account for this quarter's invoice. Let me know once the transfer is scheduled.",
			Sender:          "j.meyer@contoso-partners.co",
			Indicators: indicatorsJSON(
				"Changed payment instructions, the classic invoice-fraud tell",
				"Fake reply thread implying an earlier conversation",
				"Look-alike vendor domain (.co instead of .com)",
			),
		},
		{
			Type:            models.ScenarioTypeEmail,
			DifficultyLevel: 3,
			IsPhishing:      false,
			Subject:         "Re: Q3 vendor contract",
			Body:            "Hi Sam, thanks for the signed copy. Invoicing stays on the same schedule and account as last quarter. See you at the review call Thursday.",
			Sender:          "j.meyer@contoso-partners.com",
			Indicators: indicatorsJSON(
				"No change to payment details",
				"References shared context a stranger wouldn't know",
				"Sender domain matches the established vendor",
			),
		},
	}

	if err := db.Create(&scenarios).Error; err != nil {
		log.Fatalf("Failed to seed scenarios: %v", err)
	}
	log.Printf("Seeded %d training scenarios", len(scenarios))
}

func seedAchievements(db *gorm.DB) {
	var count int64
	db.Model(&models.Achievement{}).Count(&count)
	if count > 0 {
		return
	}

	achievements := []models.Achievement{
		{Name: "First Catch", Description: "Earn your first points", Icon: "🎣", CriteriaType: models.CriteriaPoints, Threshold: 10},
		{Name: "Point Collector", Description: "Reach 100 total points", Icon: "💰", CriteriaType: models.CriteriaPoints, Threshold: 100},
		{Name: "Point Hoarder", Description: "Reach 500 total points", Icon: "🏦", CriteriaType: models.CriteriaPoints, Threshold: 500},
		{Name: "Sharp Eye", Description: "Hold 80% accuracy", Icon: "👁️", CriteriaType: models.CriteriaAccuracy, Threshold: 80},
		{Name: "Eagle Eye", Description: "Hold 95% accuracy", Icon: "🦅", CriteriaType: models.CriteriaAccuracy, Threshold: 95},
		{Name: "Hot Streak", Description: "Answer 5 in a row correctly", Icon: "🔥", CriteriaType: models.CriteriaStreak, Threshold: 5},
		{Name: "Unstoppable", Description: "Answer 15 in a row correctly", Icon: "⚡", CriteriaType: models.CriteriaStreak, Threshold: 15},
		{Name: "Getting Started", Description: "Complete 10 scenarios", Icon: "🌱", CriteriaType: models.CriteriaScenariosCompleted, Threshold: 10},
		{Name: "Veteran Trainee", Description: "Complete 50 scenarios", Icon: "🎖️", CriteriaType: models.CriteriaScenariosCompleted, Threshold: 50},
		{Name: "Phish Spotter", Description: "Catch 10 phishing attempts", Icon: "🐟", CriteriaType: models.CriteriaPhishingDetected, Threshold: 10},
		{Name: "Phish Hunter", Description: "Catch 50 phishing attempts", Icon: "🔱", CriteriaType: models.CriteriaPhishingDetected, Threshold: 50},
	}

	if err := db.Create(&achievements).Error; err != nil {
		log.Fatalf("Failed to seed achievements: %v", err)
	}
	log.Printf("Seeded %d achievement definitions", len(achievements))
}
