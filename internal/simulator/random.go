package simulator

import (
	"math/rand/v2"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// RandomSource yields uniform values in [0,1).
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns a RandomSource backed by the runtime's global generator,
// which is safe for concurrent use.
func DefaultSource() RandomSource {
	return globalSource{}
}

// pickIndex maps r in [0,1) onto [0,n).
func pickIndex(r float64, n int) int {
	i := int(r * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// pickSide returns A for r > 0.5, otherwise B.
func pickSide(r float64) matches.Side {
	if r > 0.5 {
		return matches.SideA
	}
	return matches.SideB
}

// basketballIncrement returns 2 for r > 0.3 (p=0.7), otherwise 3.
func basketballIncrement(r float64) int {
	if r > 0.3 {
		return 2
	}
	return 3
}
