package matches

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Score holds either a numeric tally (Football, Basketball) or a point label (Tennis).
// A non-empty Label marks the label form.
type Score struct {
	Value int
	Label string
}

// Points builds a numeric score.
func Points(n int) Score {
	return Score{Value: n}
}

// Label builds a point-label score.
func Label(l string) Score {
	return Score{Label: l}
}

// IsLabel reports whether the score is a point label.
func (s Score) IsLabel() bool {
	return s.Label != ""
}

func (s Score) String() string {
	if s.IsLabel() {
		return s.Label
	}
	return strconv.Itoa(s.Value)
}

// MarshalJSON encodes labels as strings and tallies as numbers.
func (s Score) MarshalJSON() ([]byte, error) {
	if s.IsLabel() {
		return json.Marshal(s.Label)
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts either a JSON number or a JSON string. null is rejected.
func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("score must not be null")
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Points(n)
		return nil
	}
	var l string
	if err := json.Unmarshal(data, &l); err != nil {
		return fmt.Errorf("score must be a number or a string: %w", err)
	}
	if l == "" {
		return fmt.Errorf("score label must not be empty")
	}
	*s = Label(l)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (s Score) MarshalYAML() (any, error) {
	if s.IsLabel() {
		return s.Label, nil
	}
	return s.Value, nil
}

// UnmarshalYAML treats !!int scalars as tallies and quoted or other scalars as labels.
func (s *Score) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: score must be a scalar", node.Line)
	}
	if node.ShortTag() == "!!int" {
		n, err := strconv.Atoi(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*s = Points(n)
		return nil
	}
	if node.Value == "" {
		return fmt.Errorf("line %d: score label must not be empty", node.Line)
	}
	*s = Label(node.Value)
	return nil
}
