// Package seed loads the initial match list.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
)

// ErrEmptySeed is returned when a seed file holds no matches.
var ErrEmptySeed = errors.New("seed contains no matches")

type document struct {
	Matches []matches.Match `yaml:"matches"`
}

// Load reads matches from path, or returns the built-in seed when path is empty.
func Load(path string, logger *slog.Logger) ([]matches.Match, error) {
	if path == "" {
		list := matches.DefaultSeed()
		logging.Info(logger, "using built-in seed", logging.FieldCount, len(list))
		return list, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	list, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	logging.Info(logger, "loaded seed file", "path", path, logging.FieldCount, len(list))
	return list, nil
}

// Parse decodes a YAML seed. The document is either a bare list of matches
// or a mapping with a top-level "matches" key. Every match is normalized and
// validated; IDs must be unique.
func Parse(raw []byte) ([]matches.Match, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, ErrEmptySeed
	}

	var (
		list   []matches.Match
		doc    document
		target any
	)
	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		target = &list
	case yaml.MappingNode:
		target = &doc
	default:
		return nil, fmt.Errorf("seed must be a list or a mapping with a matches key")
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	if doc.Matches != nil {
		list = doc.Matches
	}

	if len(list) == 0 {
		return nil, ErrEmptySeed
	}

	seen := make(map[int]struct{}, len(list))
	for i := range list {
		list[i].Normalize()
		if err := list[i].Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := seen[list[i].ID]; dup {
			return nil, fmt.Errorf("entry %d: duplicate id %d: %w", i, list[i].ID, matches.ErrInvalidMatch)
		}
		seen[list[i].ID] = struct{}{}
	}
	return list, nil
}
