package rating

// PlayerStats are per-player aggregates over the resolved match list, served
// next to the Glicko state on player pages. Derived from the same input as a
// replay, so they never disagree with it.
type PlayerStats struct {
	Played   int `json:"played"`
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	Rated    int `json:"rated"`
	Casual   int `json:"casual"`
	ShortFmt int `json:"to_10"`
	LongFmt  int `json:"to_20"`
	// Streak is the current run of results: positive for wins, negative for
	// losses, counted backwards from the most recent resolved match.
	Streak int `json:"streak"`
}

// WinRate is wins over resolved matches, 0 for an empty record.
func (s PlayerStats) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Played)
}

// Aggregate walks matches (oldest first) and tallies the player's record.
// Unresolved matches are skipped entirely.
func Aggregate(id PlayerID, matches []Match) PlayerStats {
	var st PlayerStats
	for _, m := range matches {
		if m.Winner == "" {
			continue
		}
		if m.A != id && m.B != id {
			continue
		}
		st.Played++
		won := m.Winner == id
		if won {
			st.Wins++
		} else {
			st.Losses++
		}
		if m.Rated {
			st.Rated++
		} else {
			st.Casual++
		}
		if m.PointsTo == 10 {
			st.ShortFmt++
		} else {
			st.LongFmt++
		}

		switch {
		case won && st.Streak >= 0:
			st.Streak++
		case !won && st.Streak <= 0:
			st.Streak--
		case won:
			st.Streak = 1
		default:
			st.Streak = -1
		}
	}
	return st
}
