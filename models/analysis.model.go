package models

import "fmt"

// Risk levels returned by the analysis service.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Investment potential tiers returned by the analysis service.
const (
	PotentialStrong   = "strong"
	PotentialModerate = "moderate"
	PotentialWeak     = "weak"
)

// AnalysisScores holds the five category scores, each on a 1-10 scale.
type AnalysisScores struct {
	MarketPotential      int `json:"marketPotential"`
	TeamStrength         int `json:"teamStrength"`
	ProductInnovation    int `json:"productInnovation"`
	CompetitiveAdvantage int `json:"competitiveAdvantage"`
	FinancialViability   int `json:"financialViability"`
}

// SwotAnalysis holds the four free-text observation lists.
type SwotAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// StartupAnalysis is the evaluation produced by the completion service for
// one submission. It is stored verbatim in the startups.ai_analysis column.
type StartupAnalysis struct {
	Scores              AnalysisScores `json:"scores"`
	Analysis            SwotAnalysis   `json:"analysis"`
	Recommendations     []string       `json:"recommendations"`
	RiskLevel           string         `json:"riskLevel"`
	InvestmentPotential string         `json:"investmentPotential"`
}

// Validate checks that a decoded analysis matches the shape the prompt asked
// for. The completion service is only instructed, never forced, to conform,
// so a malformed payload must be caught here before it is persisted.
func (a *StartupAnalysis) Validate() error {
	scores := map[string]int{
		"marketPotential":      a.Scores.MarketPotential,
		"teamStrength":         a.Scores.TeamStrength,
		"productInnovation":    a.Scores.ProductInnovation,
		"competitiveAdvantage": a.Scores.CompetitiveAdvantage,
		"financialViability":   a.Scores.FinancialViability,
	}
	for name, score := range scores {
		if score < 1 || score > 10 {
			return fmt.Errorf("score %s out of range: %d", name, score)
		}
	}

	switch a.RiskLevel {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		return fmt.Errorf("unknown risk level %q", a.RiskLevel)
	}

	switch a.InvestmentPotential {
	case PotentialStrong, PotentialModerate, PotentialWeak:
	default:
		return fmt.Errorf("unknown investment potential %q", a.InvestmentPotential)
	}

	return nil
}
