package analytics

// RiskLevel is a coarse label for how much of the portfolio is committed.
type RiskLevel string

const (
	RiskHigh         RiskLevel = "High"
	RiskModerate     RiskLevel = "Moderate"
	RiskConservative RiskLevel = "Conservative"
)

// Risk is the result of AssessRisk.
type Risk struct {
	Level           RiskLevel `json:"level"`
	Score           int       `json:"score"`
	InvestmentRatio float64   `json:"investmentRatio"`
}

// AssessRisk classifies costBasis / (holdingsValue + cash). Both thresholds
// are exclusive, so a ratio equal to HighRiskRatio is Moderate.
func AssessRisk(v Valuation, policy Policy) Risk {
	r := ratio(v.CostBasis, v.HoldingsValue.Add(v.Cash))
	out := Risk{InvestmentRatio: r.Round(4).InexactFloat64()}
	switch {
	case r.GreaterThan(policy.HighRiskRatio):
		out.Level, out.Score = RiskHigh, 85
	case r.GreaterThan(policy.ModerateRiskRatio):
		out.Level, out.Score = RiskModerate, 65
	default:
		out.Level, out.Score = RiskConservative, 35
	}
	return out
}
