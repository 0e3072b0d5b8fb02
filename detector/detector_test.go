package detector

import (
	"strings"
	"testing"
)

func TestAnalyzeURLSafe(t *testing.T) {
	result := AnalyzeURL("https://google.com")

	if result.RiskScore != 0 {
		t.Errorf("RiskScore = %d, expected 0", result.RiskScore)
	}
	if result.IsSuspicious {
		t.Error("Expected IsSuspicious to be false")
	}
	if result.ThreatLevel != ThreatSafe {
		t.Errorf("ThreatLevel = %q, expected %q", result.ThreatLevel, ThreatSafe)
	}
	if len(result.Indicators) != 0 {
		t.Errorf("Expected no indicators, got %v", result.Indicators)
	}
}

func TestAnalyzeURLEmpty(t *testing.T) {
	result := AnalyzeURL("")

	if result.RiskScore != 0 || result.IsSuspicious {
		t.Errorf("Empty URL should be safe, got %+v", result)
	}
}

func TestAnalyzeURLMalformed(t *testing.T) {
	// Space in the host makes the URL unparseable. That is recorded as
	// an indicator with a fixed penalty, never returned as an error,
	// and no other rule fires.
	result := AnalyzeURL("http://exa mple.com/verify")

	if len(result.Indicators) != 1 {
		t.Fatalf("Expected exactly one indicator, got %v", result.Indicators)
	}
	if !strings.HasPrefix(result.Indicators[0], "Error parsing URL") {
		t.Errorf("Indicator = %q, expected a parse-failure indicator", result.Indicators[0])
	}
	if result.RiskScore != 30 {
		t.Errorf("RiskScore = %d, expected 30", result.RiskScore)
	}
	if result.IsSuspicious {
		t.Error("Expected IsSuspicious to be false")
	}
	if result.ThreatLevel != ThreatLow {
		t.Errorf("ThreatLevel = %q, expected %q", result.ThreatLevel, ThreatLow)
	}
}

func TestAnalyzeURLIPAndKeyword(t *testing.T) {
	result := AnalyzeURL("http://192.168.1.1/verify-now")

	wantIndicators := []string{
		"No HTTPS encryption",
		"IP address used instead of domain name",
		"Suspicious keyword: 'verify'",
	}
	for _, want := range wantIndicators {
		if !containsIndicator(result.Indicators, want) {
			t.Errorf("Missing indicator %q in %v", want, result.Indicators)
		}
	}

	if result.RiskScore < 40 {
		t.Errorf("RiskScore = %d, expected >= 40", result.RiskScore)
	}
	if result.ThreatLevel != ThreatMedium && result.ThreatLevel != ThreatHigh {
		t.Errorf("ThreatLevel = %q, expected MEDIUM or HIGH", result.ThreatLevel)
	}
	if !result.IsSuspicious {
		t.Error("Expected IsSuspicious to be true")
	}
}

func TestAnalyzeURLRules(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantScore int
		indicator string
	}{
		{
			name:      "suspicious TLD scores once",
			url:       "https://promo.example.xyz",
			wantScore: 25,
			indicator: "Suspicious domain extension: .xyz",
		},
		{
			name:      "excessive subdomains by raw dot count",
			url:       "https://a.b.c.d.example.org",
			wantScore: 15,
			indicator: "Excessive subdomains (5)",
		},
		{
			name:      "excessive hyphens",
			url:       "https://my-very-safe-bank.example.org",
			wantScore: 15,
			indicator: "Excessive hyphens in domain",
		},
		{
			name:      "long URL",
			url:       "https://example.org/" + strings.Repeat("a", 100),
			wantScore: 10,
			indicator: "Unusually long URL",
		},
		{
			name:      "typosquatting with leet substitution",
			url:       "https://g00gle.com",
			wantScore: 50,
			indicator: "Possible typosquatting of google.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnalyzeURL(tt.url)

			if result.RiskScore != tt.wantScore {
				t.Errorf("AnalyzeURL(%q).RiskScore = %d, expected %d (indicators: %v)",
					tt.url, result.RiskScore, tt.wantScore, result.Indicators)
			}
			if !containsIndicator(result.Indicators, tt.indicator) {
				t.Errorf("Missing indicator %q in %v", tt.indicator, result.Indicators)
			}
		})
	}
}

func TestRiskScoreClamped(t *testing.T) {
	// Fires nearly every rule: no https, IP host, many keywords, long.
	url := "http://1.2.3.4/verify-urgent-suspended-locked-confirm-update-secure-account?next=verify&confirm=1&account=2&pad=xxxxxxxxxx"

	result := AnalyzeURL(url)
	if result.RiskScore < 0 || result.RiskScore > 100 {
		t.Errorf("RiskScore = %d, outside [0,100]", result.RiskScore)
	}
	if result.RiskScore != 100 {
		t.Errorf("RiskScore = %d, expected clamp at 100", result.RiskScore)
	}
	if result.ThreatLevel != ThreatHigh {
		t.Errorf("ThreatLevel = %q, expected HIGH", result.ThreatLevel)
	}
}

func TestIsTyposquatting(t *testing.T) {
	tests := []struct {
		domain  string
		trusted string
		want    bool
	}{
		{"g00gle.com", "google.com", true},
		{"go0gle.com", "google.com", true},
		{"googles.com", "google.com", true},   // substring after normalization
		{"micr0soft.net", "microsoft.com", true},
		{"example.com", "google.com", false},
		{"example.com", "microsoft.com", false},
		{"example.com", "amazon.com", false},
		{"example.com", "github.com", false},
		{"example.com", "facebook.com", false},
	}

	for _, tt := range tests {
		got := isTyposquatting(tt.domain, tt.trusted)
		if got != tt.want {
			t.Errorf("isTyposquatting(%q, %q) = %v, expected %v",
				tt.domain, tt.trusted, got, tt.want)
		}
	}
}

func TestAnalyzeEmail(t *testing.T) {
	tests := []struct {
		name       string
		subject    string
		body       string
		sender     string
		wantScore  int
		indicators []string
	}{
		{
			name:      "benign email",
			subject:   "Lunch on Thursday",
			body:      "Hi Sam, are we still on for lunch this Thursday?",
			sender:    "colleague@example.org",
			wantScore: 0,
		},
		{
			name:    "urgent suspension notice",
			subject: "Urgent: account locked",
			body:    "Dear customer, your account has been locked. Act immediately.",
			sender:  "support@secure-alerts.xyz",
			// urgent (15) + immediately (15) + greeting (10) + locked (20) + sender TLD (20)
			wantScore: 80,
			indicators: []string{
				"Urgent language: 'urgent'",
				"Urgent language: 'immediately'",
				"Generic greeting (not personalized)",
				"Threatening language: 'locked'",
				"Sender has suspicious domain extension",
			},
		},
		{
			name:      "prize offer",
			subject:   "Congratulations",
			body:      "You have won a $1,000 prize! Claim your free reward now.",
			sender:    "promo@example.org",
			wantScore: 25,
			indicators: []string{
				"Suspicious offer or prize mentioned",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnalyzeEmail(tt.subject, tt.body, tt.sender)

			if result.RiskScore != tt.wantScore {
				t.Errorf("RiskScore = %d, expected %d (indicators: %v)",
					result.RiskScore, tt.wantScore, result.Indicators)
			}
			for _, want := range tt.indicators {
				if !containsIndicator(result.Indicators, want) {
					t.Errorf("Missing indicator %q in %v", want, result.Indicators)
				}
			}
			if result.RiskScore < 0 || result.RiskScore > 100 {
				t.Errorf("RiskScore = %d, outside [0,100]", result.RiskScore)
			}
		})
	}
}

func TestThreatLevel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, ThreatSafe},
		{19, ThreatSafe},
		{20, ThreatLow},
		{39, ThreatLow},
		{40, ThreatMedium},
		{69, ThreatMedium},
		{70, ThreatHigh},
		{100, ThreatHigh},
	}

	for _, tt := range tests {
		if got := threatLevel(tt.score); got != tt.want {
			t.Errorf("threatLevel(%d) = %q, expected %q", tt.score, got, tt.want)
		}
	}
}

func containsIndicator(indicators []string, want string) bool {
	for _, ind := range indicators {
		if ind == want {
			return true
		}
	}
	return false
}
