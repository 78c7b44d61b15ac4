package testutil

import (
	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// SampleMatch returns a live football match with the provided id and a ceiling of 5.
func SampleMatch(id int) matches.Match {
	ceiling := 5
	return matches.Match{
		ID:       id,
		Sport:    matches.SportFootball,
		TeamA:    "Home",
		TeamB:    "Away",
		ScoreA:   matches.Points(0),
		ScoreB:   matches.Points(0),
		Status:   matches.StatusLive,
		MaxScore: &ceiling,
	}
}

// SampleTennisMatch returns a live tennis match at the given labels.
func SampleTennisMatch(id int, a, b string) matches.Match {
	return matches.Match{
		ID:     id,
		Sport:  matches.SportTennis,
		TeamA:  "Player A",
		TeamB:  "Player B",
		ScoreA: matches.Label(a),
		ScoreB: matches.Label(b),
		Status: matches.StatusLive,
		Points: append([]string(nil), matches.TennisPoints...),
	}
}
