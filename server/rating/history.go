package rating

import "time"

// TracePoint is one step of a player's rating-over-time chart: the state at
// the end of a calendar day on which the player had at least one resolved
// match.
type TracePoint struct {
	Date    string  `json:"date"`
	Rating  float64 `json:"rating"`
	RD      float64 `json:"rd"`
	Matches int     `json:"matches"`
	Result  string  `json:"result"` // "W", "L" or "mixed"
}

// TracePlayer replays the full history and collects the target player's
// per-day trace. It rides the exact replay day loop, so the final trace point
// always equals the rating a Replay over the same input produces.
func TracePlayer(roster []PlayerID, matches []Match, target PlayerID, now time.Time) []TracePoint {
	var trace []TracePoint
	replay(roster, matches, now, func(date string, day []Match, states map[PlayerID]*State) {
		wins, losses := 0, 0
		for _, m := range day {
			if m.Winner == "" {
				continue
			}
			if m.A != target && m.B != target {
				continue
			}
			if m.Winner == target {
				wins++
			} else {
				losses++
			}
		}
		if wins+losses == 0 {
			return
		}

		result := "mixed"
		switch {
		case losses == 0:
			result = "W"
		case wins == 0:
			result = "L"
		}
		s := states[target]
		trace = append(trace, TracePoint{
			Date:    date,
			Rating:  s.Rating.Rating,
			RD:      s.Rating.RD,
			Matches: wins + losses,
			Result:  result,
		})
	})
	return trace
}
