package simulator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
	"github.com/preston-bernstein/live-scores-service/internal/metrics"
)

// Store is the match list the simulator owns and mutates.
type Store interface {
	Len() int
	Mutate(i int, fn func(m *matches.Match) error) error
}

// Notifier receives the new displayed value for each side an update touched.
type Notifier interface {
	Publish(ctx context.Context, change matches.Change)
}

// Outcome describes what a single advance did.
type Outcome struct {
	MatchID   int
	Sport     matches.Sport
	Side      matches.Side
	Skipped   bool
	Finalized bool
	Reset     bool
	Changes   []matches.Change
}

// Simulator advances mock match scores one sport-specific step at a time.
type Simulator struct {
	store   Store
	rand    RandomSource
	sink    Notifier
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New constructs a Simulator. A nil RandomSource falls back to DefaultSource.
func New(store Store, rnd RandomSource, sink Notifier, logger *slog.Logger, recorder *metrics.Recorder) *Simulator {
	if rnd == nil {
		rnd = DefaultSource()
	}
	return &Simulator{
		store:   store,
		rand:    rnd,
		sink:    sink,
		logger:  logger,
		metrics: recorder,
	}
}

// AdvanceRandomMatch picks one match uniformly at random and advances it.
// Finished matches are left untouched.
func (s *Simulator) AdvanceRandomMatch(ctx context.Context) (Outcome, error) {
	n := s.store.Len()
	if n == 0 {
		return Outcome{Skipped: true}, nil
	}
	return s.advance(ctx, pickIndex(s.rand.Float64(), n), "")
}

// Advance applies one update to the match at position index for the given side.
// An empty side is chosen at random.
func (s *Simulator) Advance(ctx context.Context, index int, side matches.Side) (Outcome, error) {
	if side != "" && !side.Valid() {
		return Outcome{}, fmt.Errorf("unknown side %q", side)
	}
	return s.advance(ctx, index, side)
}

func (s *Simulator) advance(ctx context.Context, index int, side matches.Side) (Outcome, error) {
	var (
		out    Outcome
		points int
	)
	err := s.store.Mutate(index, func(m *matches.Match) error {
		out = Outcome{MatchID: m.ID, Sport: m.Sport}
		if m.IsFinal() {
			out.Skipped = true
			return nil
		}
		if side == "" {
			side = pickSide(s.rand.Float64())
		}
		out.Side = side

		switch m.Sport {
		case matches.SportFootball:
			points = 1
			m.SetScore(side, matches.Points(m.Score(side).Value+points))
			out.Changes = append(out.Changes, changeFor(m, side))
		case matches.SportBasketball:
			points = basketballIncrement(s.rand.Float64())
			m.SetScore(side, matches.Points(m.Score(side).Value+points))
			out.Changes = append(out.Changes, changeFor(m, side))
		case matches.SportTennis:
			reset, err := advanceTennis(m, side)
			if err != nil {
				return err
			}
			points = 1
			out.Reset = reset
			if reset {
				out.Changes = append(out.Changes, changeFor(m, matches.SideA), changeFor(m, matches.SideB))
			} else {
				out.Changes = append(out.Changes, changeFor(m, side))
			}
		default:
			return fmt.Errorf("match %d: unknown sport %q: %w", m.ID, m.Sport, matches.ErrInvalidMatch)
		}

		// Tennis has no ceiling and so never finishes here.
		if m.Sport.UsesCeiling() && m.ExceedsCeiling() {
			m.Finish()
			out.Finalized = true
			for i := range out.Changes {
				out.Changes[i].Status = m.Status
			}
		}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	if out.Skipped {
		s.metrics.RecordSkipped(string(out.Sport))
		logging.Debug(s.logger, "match already final, skipping",
			logging.FieldMatchID, out.MatchID,
			logging.FieldSport, out.Sport,
		)
		return out, nil
	}

	s.metrics.RecordAdvance(string(out.Sport), points, out.Finalized)
	s.publish(ctx, out.Changes)

	last := out.Changes[len(out.Changes)-1]
	logging.Debug(s.logger, "match advanced",
		logging.FieldMatchID, out.MatchID,
		logging.FieldSport, out.Sport,
		logging.FieldSide, out.Side,
		logging.FieldScore, last.Score.String(),
		logging.FieldCount, len(out.Changes),
	)
	if out.Finalized {
		logging.Info(s.logger, "match finished",
			logging.FieldMatchID, out.MatchID,
			logging.FieldSport, out.Sport,
			logging.FieldScore, last.Score.String(),
			logging.FieldStatus, last.Status,
		)
	}
	return out, nil
}

// advanceTennis moves the side one label forward. Advancing past the last label
// resets both sides to the first label and reports true.
func advanceTennis(m *matches.Match, side matches.Side) (bool, error) {
	idx, err := m.PointIndex(side)
	if err != nil {
		return false, err
	}
	next := idx + 1
	if next >= len(m.Points) {
		first := matches.Label(m.Points[0])
		m.ScoreA = first
		m.ScoreB = first
		return true, nil
	}
	m.SetScore(side, matches.Label(m.Points[next]))
	return false, nil
}

func changeFor(m *matches.Match, side matches.Side) matches.Change {
	return matches.Change{
		MatchID: m.ID,
		Sport:   m.Sport,
		Side:    side,
		Score:   m.Score(side),
		Status:  m.Status,
	}
}

func (s *Simulator) publish(ctx context.Context, changes []matches.Change) {
	if s.sink == nil {
		return
	}
	for _, c := range changes {
		s.sink.Publish(ctx, c)
	}
}
