package rating

import "sort"

// Match weighting. A weight in [0,1] scales one match's contribution to the
// rating math. Weights exist to keep casual games off the ladder and to blunt
// same-day farming of a single opponent.
const (
	weightFull  = 1.0 // games to 20
	weightShort = 0.6 // games to 10

	maxRatedPerDay = 5   // rated matches per player per calendar day
	pairSoftLimit  = 3   // same-pair meetings per day at full weight
	pairHardLimit  = 5   // same-pair meetings per day that count at all
	pairDecay      = 0.5 // weight multiplier for meetings 4 and 5
)

// baseWeight is the weight before any per-day counters: format weight, or
// zero for casual and unresolved matches.
func baseWeight(m Match) float64 {
	if !m.Rated || m.Winner == "" {
		return 0
	}
	if m.PointsTo == 10 {
		return weightShort
	}
	return weightFull
}

type pairKey struct {
	lo, hi PlayerID
}

func makePair(a, b PlayerID) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// dayCounters accumulates the per-day anti-manipulation state. Counters only
// advance for matches with a nonzero base weight, and they are cumulative, so
// same-day matches must be fed in RecordedAt order (see sortDay).
type dayCounters struct {
	perPlayer map[PlayerID]int
	perPair   map[pairKey]int
}

func newDayCounters() *dayCounters {
	return &dayCounters{
		perPlayer: make(map[PlayerID]int),
		perPair:   make(map[pairKey]int),
	}
}

// weigh returns the final weight for m and advances the counters.
//
// Order of rules: format/casual base weight, then the per-player daily cap,
// then repeated-opponent decay. A capped match still advanced the counters,
// so a player cannot reset their own cap by burning matches against a third
// opponent.
func (c *dayCounters) weigh(m Match) float64 {
	w := baseWeight(m)
	if w == 0 {
		return 0
	}

	c.perPlayer[m.A]++
	c.perPlayer[m.B]++
	pk := makePair(m.A, m.B)
	c.perPair[pk]++

	if c.perPlayer[m.A] > maxRatedPerDay || c.perPlayer[m.B] > maxRatedPerDay {
		return 0
	}
	switch n := c.perPair[pk]; {
	case n > pairHardLimit:
		return 0
	case n > pairSoftLimit:
		w *= pairDecay
	}
	return w
}

// sortDay orders one day's matches by RecordedAt, keeping input order for
// equal timestamps. The weight counters depend on this canonical ordering.
func sortDay(day []Match) {
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].RecordedAt.Before(day[j].RecordedAt)
	})
}
