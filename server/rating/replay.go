package rating

import (
	"math"
	"sort"
	"time"
)

// Replay recomputes every roster player's state from scratch over the entire
// match history. It is the source of truth: the incremental path skips the
// per-day weight counters and gap growth, and a replay reconciles the
// difference.
//
// Matches referencing players outside the roster are silently excluded.
// The result is bit-reproducible for identical (roster, matches, now).
func Replay(roster []PlayerID, matches []Match, now time.Time) map[PlayerID]*State {
	return replay(roster, matches, now, nil)
}

// replay is the shared day loop behind Replay and TracePlayer. observe, when
// non-nil, sees each date bucket (in canonical order) right after its period
// settles, so a trace reads exactly the numbers a replay would produce.
func replay(roster []PlayerID, matches []Match, now time.Time, observe func(date string, day []Match, states map[PlayerID]*State)) map[PlayerID]*State {
	states := make(map[PlayerID]*State, len(roster))
	for _, id := range roster {
		s := NewState()
		states[id] = &s
	}

	buckets := make(map[string][]Match)
	for _, m := range matches {
		if _, ok := states[m.A]; !ok {
			continue
		}
		if _, ok := states[m.B]; !ok {
			continue
		}
		buckets[m.Date] = append(buckets[m.Date], m)
	}

	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates) // YYYY-MM-DD sorts chronologically

	prev := ""
	for _, date := range dates {
		day := buckets[date]
		sortDay(day)

		// Empty calendar days between buckets grow everyone's deviation
		// without iterating the days one by one.
		if prev != "" {
			if gap := daysBetween(prev, date); gap > 1 {
				for _, s := range states {
					growIdle(s, gap-1)
				}
			}
		}

		counters := newDayCounters()
		weighted := make([]periodMatch, 0, len(day))
		for _, m := range day {
			w := counters.weigh(m)
			if w > 0 {
				states[m.A].Meta.RatedMatches++
				states[m.B].Meta.RatedMatches++
			}
			weighted = append(weighted, periodMatch{a: m.A, b: m.B, winner: m.Winner, weight: w})
		}

		applyPeriod(states, weighted)
		for _, s := range states {
			settleDay(s)
		}
		if observe != nil {
			observe(date, day, states)
		}
		prev = date
	}

	// Trailing inactivity between the last match day and now.
	if prev != "" {
		if gap := daysBetween(prev, now.UTC().Format(DateLayout)); gap > 1 {
			for _, s := range states {
				growIdle(s, gap-1)
			}
		}
	}

	return states
}

// growIdle applies days of pure inactivity growth in one step:
// phi^2 += days * sigma^2, with the resulting RD capped at the 350 ceiling a
// brand-new player starts from.
func growIdle(s *State, days int) {
	mu, phi := toInternal(s.Rating.Rating, s.Rating.RD)
	phi = math.Sqrt(phi*phi + float64(days)*s.Rating.Volatility*s.Rating.Volatility)
	if ceil := DefaultRD / Scale; phi > ceil {
		phi = ceil
	}
	s.Rating.Rating, s.Rating.RD = fromInternal(mu, phi)
}
