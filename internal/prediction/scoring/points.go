package scoring

const (
	// OutcomePoints is awarded for a hit: same outcome and same goal margin.
	OutcomePoints = 5
	// MarginBonus is added to every hit.
	MarginBonus = 1
	// ExactSidePoints is added per side whose goal count is exact.
	ExactSidePoints = 2
	// DoublePointsFactor multiplies the total on double-points matches.
	DoublePointsFactor = 2
)

// CalculatePoints returns the points earned by a prediction against a final score.
//
// An incomplete prediction earns nothing. A prediction scores only when it
// reproduces the goal margin of the match, which also fixes the outcome:
// 10 points for the exact score, 6 otherwise. Any other prediction earns 0.
func CalculatePoints(matchLocal, matchVisitor int, predLocal, predVisitor *int, doublePoints bool) int {
	if predLocal == nil || predVisitor == nil {
		return 0
	}

	pl, pv := *predLocal, *predVisitor
	if pl-pv != matchLocal-matchVisitor {
		return 0
	}

	points := OutcomePoints + MarginBonus
	if pl == matchLocal {
		points += ExactSidePoints
	}
	if pv == matchVisitor {
		points += ExactSidePoints
	}

	if doublePoints {
		points *= DoublePointsFactor
	}
	return points
}
