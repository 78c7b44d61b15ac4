package matches

// DefaultSeed returns the fixed matches the simulator starts with.
func DefaultSeed() []Match {
	footballMax := 5
	basketballMax := 130
	return []Match{
		{
			ID:       1,
			Sport:    SportFootball,
			TeamA:    "Manchester Knights",
			TeamB:    "London Warriors",
			ScoreA:   Points(0),
			ScoreB:   Points(1),
			Status:   StatusLive,
			MaxScore: &footballMax,
		},
		{
			ID:       2,
			Sport:    SportBasketball,
			TeamA:    "LA Lakers",
			TeamB:    "Boston Celtics",
			ScoreA:   Points(72),
			ScoreB:   Points(68),
			Status:   StatusLive,
			MaxScore: &basketballMax,
		},
		{
			ID:     3,
			Sport:  SportTennis,
			TeamA:  "C. Alcaraz",
			TeamB:  "N. Djokovic",
			ScoreA: Label("30"),
			ScoreB: Label("40"),
			Status: StatusLive,
			Points: append([]string(nil), TennisPoints...),
		},
	}
}
