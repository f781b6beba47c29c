package types

// Tier is a coarse admission-difficulty bucket derived from a numeric chance.
type Tier string

const (
	TierReach   Tier = "reach"
	TierTarget  Tier = "target"
	TierSafety  Tier = "safety"
	TierUnknown Tier = "unknown"
)

// FactorStatus grades a single factor in a chances breakdown.
type FactorStatus string

const (
	StatusStrong  FactorStatus = "strong"
	StatusOK      FactorStatus = "ok"
	StatusWeak    FactorStatus = "weak"
	StatusMissing FactorStatus = "missing"
)

// Confidence is a qualitative indicator of how much data backed a result.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// FactorBreakdown explains one factor's contribution to a chance estimate.
type FactorBreakdown struct {
	Factor string       `json:"factor"`
	Status FactorStatus `json:"status"`
	Impact string       `json:"impact"` // "+5%", "-3%", or "?" when missing
}

// ChancesResult is the output of a chance estimate for one school.
type ChancesResult struct {
	Chance     int               `json:"chance"`
	Tier       Tier              `json:"tier"`
	Breakdown  []FactorBreakdown `json:"breakdown"`
	Confidence Confidence        `json:"confidence"`
}

// TierForChance maps a clamped chance percentage to its tier.
func TierForChance(chance int) Tier {
	switch {
	case chance < 15:
		return TierReach
	case chance < 40:
		return TierTarget
	default:
		return TierSafety
	}
}

// ConfidenceForDataPoints maps the number of present factors (0-4) to a confidence level.
func ConfidenceForDataPoints(dataPoints int) Confidence {
	switch {
	case dataPoints >= 4:
		return ConfidenceHigh
	case dataPoints >= 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
