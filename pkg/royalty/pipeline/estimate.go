package pipeline

// grossTier is one row of the annual gross lookup table.
type grossTier struct {
	minCompleteness float64
	verified        float64
	unverified      float64
}

// annualGrossTable stands in for revenue ground truth, which does not exist at estimation
// time. Rows are evaluated top-down; the last row catches everything below 0.5.
var annualGrossTable = []grossTier{
	{minCompleteness: 0.85, verified: 12000, unverified: 6000},
	{minCompleteness: 0.70, verified: 6000, unverified: 3000},
	{minCompleteness: 0.50, verified: 2500, unverified: 1200},
}

var annualGrossFloor = grossTier{verified: 800, unverified: 400}

// EstimateAnnualGrossFromCompleteness returns the heuristic annual gross revenue for a
// work with the given metadata completeness.
func EstimateAnnualGrossFromCompleteness(score float64, verified bool) float64 {
	tier := annualGrossFloor
	for _, row := range annualGrossTable {
		if score >= row.minCompleteness {
			tier = row
			break
		}
	}
	if verified {
		return tier.verified
	}
	return tier.unverified
}
