// detector/detector.go - Heuristic phishing indicator analysis
package detector

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Known phishing indicators
var (
	SuspiciousTLDs     = []string{".xyz", ".top", ".win", ".work", ".click", ".link", ".download"}
	SuspiciousKeywords = []string{"verify", "urgent", "suspended", "locked", "confirm", "update", "secure", "account"}
	TrustedDomains     = []string{"google.com", "microsoft.com", "amazon.com", "github.com", "facebook.com"}

	urgentWords = []string{"urgent", "immediately", "action required", "suspend", "verify now", "expires"}
	threatWords = []string{"suspend", "terminate", "locked", "disabled", "blocked"}
)

var (
	ipHostRe       = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
	genericGreetRe = regexp.MustCompile(`\b(dear (user|customer|sir|madam))\b`)
	offerRe        = regexp.MustCompile(`\$\d+[,\d]*|\bwin\b|\bwon\b|\bprize\b|\bfree\b`)
	leetNormalizer = strings.NewReplacer("0", "o", "1", "l", "5", "s", "3", "e")
)

// Threat levels
const (
	ThreatHigh   = "HIGH"
	ThreatMedium = "MEDIUM"
	ThreatLow    = "LOW"
	ThreatSafe   = "SAFE"
)

// Result is the outcome of analyzing a URL or an email.
type Result struct {
	IsSuspicious bool     `json:"is_suspicious"`
	Indicators   []string `json:"indicators"`
	RiskScore    int      `json:"risk_score"`
	ThreatLevel  string   `json:"threat_level"`
}

// AnalyzeURL scores a URL against a fixed set of phishing heuristics.
// All rules are additive and the total is clamped to [0,100]. Parse
// failures are recorded as an indicator, never returned as an error.
func AnalyzeURL(rawURL string) Result {
	if rawURL == "" {
		return Result{Indicators: []string{}, ThreatLevel: ThreatSafe}
	}

	indicators := []string{}
	riskScore := 0

	parsed, err := url.Parse(rawURL)
	if err != nil {
		indicators = append(indicators, fmt.Sprintf("Error parsing URL: %v", err))
		riskScore += 30
	} else {
		domain := strings.ToLower(parsed.Host)

		if parsed.Scheme != "https" {
			indicators = append(indicators, "No HTTPS encryption")
			riskScore += 20
		}

		for _, tld := range SuspiciousTLDs {
			if strings.HasSuffix(domain, tld) {
				indicators = append(indicators, fmt.Sprintf("Suspicious domain extension: %s", tld))
				riskScore += 25
				break
			}
		}

		if ipHostRe.MatchString(domain) {
			indicators = append(indicators, "IP address used instead of domain name")
			riskScore += 40
		}

		urlLower := strings.ToLower(rawURL)
		for _, keyword := range SuspiciousKeywords {
			if strings.Contains(urlLower, keyword) {
				indicators = append(indicators, fmt.Sprintf("Suspicious keyword: '%s'", keyword))
				riskScore += 10
			}
		}

		for _, trusted := range TrustedDomains {
			// The genuine domain and its subdomains are not squatting.
			if domain == trusted || strings.HasSuffix(domain, "."+trusted) {
				continue
			}
			if isTyposquatting(domain, trusted) {
				indicators = append(indicators, fmt.Sprintf("Possible typosquatting of %s", trusted))
				riskScore += 50
			}
		}

		// Literal dot count, not true subdomain depth.
		subdomainCount := strings.Count(domain, ".")
		if subdomainCount > 3 {
			indicators = append(indicators, fmt.Sprintf("Excessive subdomains (%d)", subdomainCount))
			riskScore += 15
		}

		if strings.Count(domain, "-") > 2 {
			indicators = append(indicators, "Excessive hyphens in domain")
			riskScore += 15
		}

		if len(rawURL) > 100 {
			indicators = append(indicators, "Unusually long URL")
			riskScore += 10
		}
	}

	if riskScore > 100 {
		riskScore = 100
	}

	return Result{
		IsSuspicious: riskScore >= 40,
		Indicators:   indicators,
		RiskScore:    riskScore,
		ThreatLevel:  threatLevel(riskScore),
	}
}

// AnalyzeEmail scores email content against a fixed set of phishing
// heuristics. Same additive, clamp-at-end structure as AnalyzeURL.
func AnalyzeEmail(subject, body, sender string) Result {
	indicators := []string{}
	riskScore := 0

	subjectLower := strings.ToLower(subject)
	bodyLower := strings.ToLower(body)

	for _, word := range urgentWords {
		if strings.Contains(subjectLower, word) || strings.Contains(bodyLower, word) {
			indicators = append(indicators, fmt.Sprintf("Urgent language: '%s'", word))
			riskScore += 15
		}
	}

	if genericGreetRe.MatchString(bodyLower) {
		indicators = append(indicators, "Generic greeting (not personalized)")
		riskScore += 10
	}

	for _, word := range threatWords {
		if strings.Contains(subjectLower, word) || strings.Contains(bodyLower, word) {
			indicators = append(indicators, fmt.Sprintf("Threatening language: '%s'", word))
			riskScore += 20
		}
	}

	if offerRe.MatchString(bodyLower) {
		indicators = append(indicators, "Suspicious offer or prize mentioned")
		riskScore += 25
	}

	if at := strings.Index(sender, "@"); at >= 0 {
		domain := strings.ToLower(sender[at+1:])
		for _, tld := range SuspiciousTLDs {
			if strings.HasSuffix(domain, tld) {
				indicators = append(indicators, "Sender has suspicious domain extension")
				riskScore += 20
				break
			}
		}
	}

	if riskScore > 100 {
		riskScore = 100
	}

	return Result{
		IsSuspicious: riskScore >= 40,
		Indicators:   indicators,
		RiskScore:    riskScore,
		ThreatLevel:  threatLevel(riskScore),
	}
}

// isTyposquatting reports whether domain is deceptively similar to a
// trusted domain. Compares first labels only, after normalizing common
// character substitutions ('0' for 'o', '1' for 'l', and so on).
func isTyposquatting(domain, trustedDomain string) bool {
	domainBase := domain
	if i := strings.Index(domain, "."); i >= 0 {
		domainBase = domain[:i]
	}
	trustedBase := trustedDomain
	if i := strings.Index(trustedDomain, "."); i >= 0 {
		trustedBase = trustedDomain[:i]
	}

	normalized := leetNormalizer.Replace(domainBase)
	if normalized == trustedBase || strings.Contains(normalized, trustedBase) {
		return true
	}

	// Simple character additions/deletions: close in length with most
	// positions matching.
	if len(domainBase) >= len(trustedBase)-2 && len(domainBase) <= len(trustedBase)+2 {
		n := len(domainBase)
		if len(trustedBase) < n {
			n = len(trustedBase)
		}
		similarity := 0
		for i := 0; i < n; i++ {
			if domainBase[i] == trustedBase[i] {
				similarity++
			}
		}
		if similarity >= len(trustedBase)-2 {
			return true
		}
	}

	return false
}

func threatLevel(riskScore int) string {
	switch {
	case riskScore >= 70:
		return ThreatHigh
	case riskScore >= 40:
		return ThreatMedium
	case riskScore >= 20:
		return ThreatLow
	default:
		return ThreatSafe
	}
}
