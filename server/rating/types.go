// Package rating implements the club's player rating engine: a Glicko-2
// update loop with anti-manipulation match weighting, climb-only tiers,
// and two computation paths (full historical replay and an incremental
// two-player update for freshly recorded matches).
//
// The engine is pure: it holds no global state, performs no I/O, and is
// deterministic for identical input. Callers own persistence and must
// serialize rating writes (a replay touches every player, an incremental
// update touches two).
//
// Variable naming inside the math follows Glickman's paper:
// mu/phi are the rating and deviation on the internal scale, sigma is the
// volatility. See https://www.glicko.net/glicko/glicko2.pdf.
package rating

import "time"

// PlayerID identifies a club member. The store uses UUID strings.
type PlayerID string

// Rating holds the public "1500-scale" Glicko-2 values (not mu/phi).
type Rating struct {
	Rating     float64 `json:"rating"`
	RD         float64 `json:"rd"`
	Volatility float64 `json:"volatility"`
}

// Meta carries the cumulative bookkeeping the engine maintains next to the
// Glicko values. Tier never decreases; Peak is the running maximum rating.
type Meta struct {
	RatedMatches int     `json:"rated_matches"`
	Tier         int     `json:"tier"`
	Peak         float64 `json:"peak_rating"`
}

// State is one player's full derived record.
type State struct {
	Rating Rating `json:"glicko"`
	Meta   Meta   `json:"meta"`
}

// NewState returns a fresh player at the standard defaults.
func NewState() State {
	return State{
		Rating: Rating{Rating: DefaultRating, RD: DefaultRD, Volatility: DefaultVolatility},
		Meta:   Meta{Peak: DefaultRating},
	}
}

// Match is one recorded game between two club members.
//
// Date is the calendar day ("2006-01-02") used for rating-period bucketing.
// RecordedAt orders matches within a day for the weight counters; it never
// enters the rating math itself. An empty Winner means the match was never
// resolved and it contributes no rating weight.
type Match struct {
	A          PlayerID  `json:"player_a"`
	B          PlayerID  `json:"player_b"`
	Winner     PlayerID  `json:"winner,omitempty"`
	PointsTo   int       `json:"points_to"` // 10 or 20
	Rated      bool      `json:"rated"`
	Date       string    `json:"date"`
	RecordedAt time.Time `json:"recorded_at"`
}

// DateLayout is the calendar format of Match.Date.
const DateLayout = "2006-01-02"

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// daysBetween returns the whole calendar days from a to b (positive when b is
// later). Unparseable dates count as adjacent so the replay never invents a
// deviation-growth gap from bad input.
func daysBetween(a, b string) int {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	if !okA || !okB {
		return 1
	}
	return int(tb.Sub(ta).Hours() / 24)
}
