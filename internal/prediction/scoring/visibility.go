package scoring

import (
	"time"

	predictionModel "github.com/festy23/prode/internal/prediction/model"
	tournamentModel "github.com/festy23/prode/internal/tournament/model"
)

// WatchWindow is how long before kickoff predictions become visible to the group.
const WatchWindow = 10 * time.Minute

// MatchVisible reports whether predictions for the match may be disclosed at now:
// the match has a result, starts within WatchWindow, or has already started.
func MatchVisible(match *tournamentModel.Match, now time.Time) bool {
	if match == nil {
		return false
	}
	if match.HasResult() {
		return true
	}
	return !now.Before(match.ScheduledAt.Add(-WatchWindow))
}

// CanWatch reports whether the prediction's goals may be shown to other members.
// The prediction must carry its Match.
func CanWatch(p *predictionModel.Prediction, now time.Time) bool {
	if p == nil {
		return false
	}
	return MatchVisible(p.Match, now)
}

// CanEdit reports whether the owner may still change the prediction's goals.
func CanEdit(p *predictionModel.Prediction, now time.Time) bool {
	if p == nil || p.Match == nil || p.Match.IsClosed {
		return false
	}
	return !MatchVisible(p.Match, now)
}
