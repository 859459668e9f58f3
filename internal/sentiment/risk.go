package sentiment

import (
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

const (
	criticalScoreThreshold = -0.7
	highScoreThreshold     = -0.3
	negativeRatioThreshold = 0.3
	highVolumeThreshold    = 1000
)

// highVolumeFactor annotates elevated assessments at high mention volume.
// It never raises the numeric level.
const highVolumeFactor = "High volume amplifies risk"

var recommendationsByLevel = map[domain.RiskLevel][]string{
	domain.RiskCritical: {
		"Activate crisis response plan immediately",
		"Issue a public statement addressing the concerns",
		"Escalate to senior leadership",
		"Monitor all channels at increased frequency",
	},
	domain.RiskHigh: {
		"Respond to the most visible negative mentions",
		"Prepare holding statements for likely questions",
		"Brief the communications team on the situation",
	},
	domain.RiskMedium: {
		"Engage with dissatisfied customers directly",
		"Review recurring complaint themes",
		"Increase monitoring frequency for this brand",
	},
	domain.RiskLow: {
		"Continue routine monitoring",
		"Amplify positive mentions where appropriate",
		"Track sentiment trend week over week",
	},
}

// AssessRisk maps an aggregated summary to a risk level with explanatory
// factors and a static set of recommended actions.
func AssessRisk(agg domain.AggregatedSentiment) domain.RiskAssessment {
	var (
		level   domain.RiskLevel
		factors []string
	)

	negativeRatio := 0.0
	if agg.Volume > 0 {
		negatives := agg.Breakdown[domain.LabelNegative] + agg.Breakdown[domain.LabelVeryNegative]
		negativeRatio = float64(negatives) / float64(agg.Volume)
	}

	switch {
	case agg.Overall.Score < criticalScoreThreshold:
		level = domain.RiskCritical
		factors = append(factors, "Overall sentiment is critically negative")
	case agg.Overall.Score < highScoreThreshold:
		level = domain.RiskHigh
		factors = append(factors, "Overall sentiment is strongly negative")
	case negativeRatio > negativeRatioThreshold:
		level = domain.RiskMedium
		factors = append(factors, "High proportion of negative mentions")
	default:
		level = domain.RiskLow
	}

	if agg.Volume > highVolumeThreshold && level != domain.RiskLow {
		factors = append(factors, highVolumeFactor)
	}

	return domain.RiskAssessment{
		Level:           level,
		Factors:         factors,
		Recommendations: recommendationsByLevel[level],
	}
}
