// Package scoring holds the pure prediction rules: outcome resolution,
// points calculation and the visibility window around kickoff.
package scoring

// Outcome is the result of a match from the local team's point of view.
type Outcome int

const (
	// OutcomeTie means both sides scored the same number of goals.
	OutcomeTie Outcome = iota
	// OutcomeLocalWin means the local team scored more goals.
	OutcomeLocalWin
	// OutcomeVisitorWin means the visitor team scored more goals.
	OutcomeVisitorWin
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeLocalWin:
		return "local_win"
	case OutcomeVisitorWin:
		return "visitor_win"
	default:
		return "tie"
	}
}

// ResolveOutcome maps a goal pair to its outcome.
func ResolveOutcome(goalsLocal, goalsVisitor int) Outcome {
	switch {
	case goalsLocal > goalsVisitor:
		return OutcomeLocalWin
	case goalsLocal < goalsVisitor:
		return OutcomeVisitorWin
	default:
		return OutcomeTie
	}
}
