package services

import (
	"fmt"
	"time"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

// Explanation template thresholds.
const (
	goldenScoreFloor     = 85
	morningScoreFloor    = 80
	compromiseScoreFloor = 60
)

const confirmWarning = "Consider confirming this time works"

// BuildExplanation selects the explanation template for one emitted slot.
// The weekday and hour are the contact-local values; zoneName is the
// contact's IANA zone.
func BuildExplanation(score domain.QualityScore, weekday time.Weekday, hour int, zoneName string) domain.Explanation {
	factors := breakdownFactors(score)

	switch {
	case score.Score >= goldenScoreFloor && weekday == time.Friday && hour >= 14:
		return domain.Explanation{
			Primary: fmt.Sprintf("Golden slot: Friday afternoon at %s (%s)", score.LocalTime, zoneName),
			Factors: factors,
		}
	case score.Score >= morningScoreFloor && hour >= 9 && hour <= 11:
		return domain.Explanation{
			Primary: fmt.Sprintf("Strong morning slot at %s (%s)", score.LocalTime, zoneName),
			Factors: factors,
		}
	case score.Score >= compromiseScoreFloor:
		return domain.Explanation{
			Primary: fmt.Sprintf("Workable time at %s (%s)", score.LocalTime, zoneName),
			Factors: factors,
		}
	default:
		return domain.Explanation{
			Primary:  fmt.Sprintf("Below-target time at %s (%s)", score.LocalTime, zoneName),
			Factors:  factors,
			Warnings: []string{confirmWarning},
		}
	}
}

// breakdownFactors renders the signed sub-scores plus the scorer's
// reasoning tags as display factors.
func breakdownFactors(score domain.QualityScore) []string {
	factors := make([]string, 0, 3+len(score.Reasoning))
	factors = append(factors,
		fmt.Sprintf("base time %+d", score.Breakdown.BaseScore),
		fmt.Sprintf("day of week %+d", score.Breakdown.DayScore),
		fmt.Sprintf("meeting density %+d", score.Breakdown.DensityScore),
	)
	factors = append(factors, score.Reasoning...)
	return factors
}
