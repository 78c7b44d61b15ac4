package matches

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Sport is the closed set of simulated sports.
type Sport string

const (
	SportFootball   Sport = "Football"
	SportBasketball Sport = "Basketball"
	SportTennis     Sport = "Tennis"
)

// Status mirrors the lifecycle of a simulated match. Only Live -> Final is allowed.
type Status string

const (
	StatusLive  Status = "Live"
	StatusFinal Status = "Final"
)

// Side identifies one of the two competitors in a match.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// TennisPoints is the fixed ordered point sequence used by tennis matches.
var TennisPoints = []string{"0", "15", "30", "40", "AD"}

var (
	// ErrInvalidMatch is returned when a match breaks a data model invariant.
	ErrInvalidMatch = errors.New("invalid match")
	// ErrUnknownPoint is returned when a tennis score is not in the match's point sequence.
	ErrUnknownPoint = errors.New("score not in point sequence")
	// ErrMatchNotFound is returned when no match has the requested ID.
	ErrMatchNotFound = errors.New("match not found")
)

// Match is one simulated contest with two sides and a score state.
type Match struct {
	ID       int      `json:"id" yaml:"id"`
	Sport    Sport    `json:"sport" yaml:"sport"`
	TeamA    string   `json:"teamA" yaml:"teamA"`
	TeamB    string   `json:"teamB" yaml:"teamB"`
	ScoreA   Score    `json:"scoreA" yaml:"scoreA"`
	ScoreB   Score    `json:"scoreB" yaml:"scoreB"`
	Status   Status   `json:"status" yaml:"status"`
	MaxScore *int     `json:"maxScore,omitempty" yaml:"maxScore,omitempty"`
	Points   []string `json:"points,omitempty" yaml:"points,omitempty"`
}

// Valid reports whether the sport is one of the supported values.
func (s Sport) Valid() bool {
	switch s {
	case SportFootball, SportBasketball, SportTennis:
		return true
	}
	return false
}

// UsesCeiling reports whether the sport finishes once a score passes MaxScore.
func (s Sport) UsesCeiling() bool {
	return s == SportFootball || s == SportBasketball
}

// Valid reports whether the status is Live or Final.
func (s Status) Valid() bool {
	return s == StatusLive || s == StatusFinal
}

// Valid reports whether the side is A or B.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// ParseSport matches a sport name case-insensitively.
func ParseSport(raw string) (Sport, error) {
	for _, s := range []Sport{SportFootball, SportBasketball, SportTennis} {
		if strings.EqualFold(string(s), raw) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown sport %q", raw)
}

// ParseStatus matches a status name case-insensitively.
func ParseStatus(raw string) (Status, error) {
	for _, s := range []Status{StatusLive, StatusFinal} {
		if strings.EqualFold(string(s), raw) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// Score returns the score held by the given side.
func (m *Match) Score(side Side) Score {
	if side == SideA {
		return m.ScoreA
	}
	return m.ScoreB
}

// SetScore replaces the score held by the given side.
func (m *Match) SetScore(side Side, score Score) {
	if side == SideA {
		m.ScoreA = score
		return
	}
	m.ScoreB = score
}

// IsFinal reports whether the match has finished.
func (m *Match) IsFinal() bool {
	return m.Status == StatusFinal
}

// ExceedsCeiling reports whether either side is strictly above MaxScore.
func (m *Match) ExceedsCeiling() bool {
	if m.MaxScore == nil {
		return false
	}
	return m.ScoreA.Value > *m.MaxScore || m.ScoreB.Value > *m.MaxScore
}

// Finish moves the match to Final. A finished match stays finished.
func (m *Match) Finish() {
	m.Status = StatusFinal
}

// PointIndex returns the position of the side's label within Points.
func (m *Match) PointIndex(side Side) (int, error) {
	label := m.Score(side).Label
	for i, p := range m.Points {
		if p == label {
			return i, nil
		}
	}
	return -1, fmt.Errorf("match %d side %s score %q: %w", m.ID, side, label, ErrUnknownPoint)
}

// Normalize fills defaults that seed files may omit: Live status, the tennis
// point sequence, and label form for numeric tennis scores.
func (m *Match) Normalize() {
	if m.Status == "" {
		m.Status = StatusLive
	}
	if m.Sport != SportTennis {
		return
	}
	if len(m.Points) == 0 {
		m.Points = append([]string(nil), TennisPoints...)
	}
	if !m.ScoreA.IsLabel() {
		m.ScoreA = Label(strconv.Itoa(m.ScoreA.Value))
	}
	if !m.ScoreB.IsLabel() {
		m.ScoreB = Label(strconv.Itoa(m.ScoreB.Value))
	}
}

// Validate checks the data model invariants for the match.
func (m *Match) Validate() error {
	if !m.Sport.Valid() {
		return fmt.Errorf("match %d: unknown sport %q: %w", m.ID, m.Sport, ErrInvalidMatch)
	}
	if !m.Status.Valid() {
		return fmt.Errorf("match %d: unknown status %q: %w", m.ID, m.Status, ErrInvalidMatch)
	}
	if m.Sport.UsesCeiling() {
		if m.MaxScore == nil || len(m.Points) > 0 {
			return fmt.Errorf("match %d: %s requires maxScore and no points: %w", m.ID, m.Sport, ErrInvalidMatch)
		}
		for _, s := range []Score{m.ScoreA, m.ScoreB} {
			if s.IsLabel() || s.Value < 0 {
				return fmt.Errorf("match %d: score %s must be a non-negative integer: %w", m.ID, s, ErrInvalidMatch)
			}
		}
		return nil
	}
	if m.MaxScore != nil || len(m.Points) == 0 {
		return fmt.Errorf("match %d: %s requires points and no maxScore: %w", m.ID, m.Sport, ErrInvalidMatch)
	}
	if !slices.Equal(m.Points, TennisPoints) {
		return fmt.Errorf("match %d: points %q must be %q: %w", m.ID, m.Points, TennisPoints, ErrInvalidMatch)
	}
	for _, side := range []Side{SideA, SideB} {
		if _, err := m.PointIndex(side); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMatch, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the match.
func (m *Match) Clone() Match {
	c := *m
	if m.MaxScore != nil {
		v := *m.MaxScore
		c.MaxScore = &v
	}
	if m.Points != nil {
		c.Points = append([]string(nil), m.Points...)
	}
	return c
}
