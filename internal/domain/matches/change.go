package matches

// Change is the new displayed score for one side of a match.
type Change struct {
	MatchID int    `json:"matchId"`
	Sport   Sport  `json:"sport"`
	Side    Side   `json:"side"`
	Score   Score  `json:"score"`
	Status  Status `json:"status"`
}
