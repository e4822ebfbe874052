package rating

import (
	"sort"
	"time"
)

// Leaderboard scoring. The score blends a pessimistic skill estimate with the
// strength of beaten opposition and recent activity, so a high rating earned
// months ago against weak opponents cannot park on top of the board.
const (
	MinLeaderboardMatches = 5 // career rated matches to appear at all

	strengthWindowDays = 90 // window for "recent" beaten opponents
	activityWindowDays = 30 // window for the activity bonus

	staleWinPenalty   = 0.95 // all-time fallback when no recent wins
	winlessFactor     = 0.9  // opponent factor stand-in for zero career wins
	maxStrengthFactor = 1.5

	activityPerMatch = 5.0
	maxActivityBonus = 100.0

	conservativeShare = 0.60
	strengthShare     = 0.30
	activityShare     = 0.10
)

// Standing is one leaderboard row.
type Standing struct {
	Player       PlayerID `json:"player_id"`
	Score        float64  `json:"score"`
	Rating       float64  `json:"rating"`
	RD           float64  `json:"rd"`
	Conservative float64  `json:"conservative"`
	Tier         int      `json:"tier"`
	RatedMatches int      `json:"rated_matches"`
}

// Standings ranks every eligible roster player by the composite score:
//
//	score = 0.60*cons + 0.30*cons*strength + 0.10*activity
//
// where cons = rating - 2*RD. The sort is stable and descending, so equal
// scores keep roster order.
func Standings(roster []PlayerID, states map[PlayerID]*State, matches []Match, now time.Time) []Standing {
	out := make([]Standing, 0, len(roster))
	for _, id := range roster {
		s, ok := states[id]
		if !ok || s.Meta.RatedMatches < MinLeaderboardMatches {
			continue
		}
		cons := s.Rating.Rating - 2*s.Rating.RD
		strength := opponentStrength(id, states, matches, now)
		activity := activityBonus(id, matches, now)
		out = append(out, Standing{
			Player:       id,
			Score:        conservativeShare*cons + strengthShare*cons*strength + activityShare*activity,
			Rating:       s.Rating.Rating,
			RD:           s.Rating.RD,
			Conservative: cons,
			Tier:         s.Meta.Tier,
			RatedMatches: s.Meta.RatedMatches,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// opponentStrength averages the current rating of opponents the player has
// beaten within the strength window, normalized against the default rating
// and capped. With no recent wins it falls back to all-time wins at a small
// penalty; with no wins at all it assumes a below-average opposition.
func opponentStrength(id PlayerID, states map[PlayerID]*State, matches []Match, now time.Time) float64 {
	cutoff := now.UTC().AddDate(0, 0, -strengthWindowDays)

	var recentSum, allSum float64
	var recentN, allN int
	for _, m := range matches {
		if m.Winner != id {
			continue
		}
		opp := m.A
		if opp == id {
			opp = m.B
		}
		os, ok := states[opp]
		if !ok {
			continue
		}
		allSum += os.Rating.Rating
		allN++
		if d, ok := parseDate(m.Date); ok && !d.Before(cutoff) {
			recentSum += os.Rating.Rating
			recentN++
		}
	}

	var avg float64
	switch {
	case recentN > 0:
		avg = recentSum / float64(recentN)
	case allN > 0:
		avg = allSum / float64(allN) * staleWinPenalty
	default:
		avg = DefaultRating * winlessFactor
	}

	f := avg / DefaultRating
	if f > maxStrengthFactor {
		f = maxStrengthFactor
	}
	return f
}

// activityBonus rewards rated play inside the activity window, capped so
// volume alone cannot dominate the score.
func activityBonus(id PlayerID, matches []Match, now time.Time) float64 {
	cutoff := now.UTC().AddDate(0, 0, -activityWindowDays)

	n := 0
	for _, m := range matches {
		if m.A != id && m.B != id {
			continue
		}
		if !m.Rated || m.Winner == "" {
			continue
		}
		if d, ok := parseDate(m.Date); ok && !d.Before(cutoff) {
			n++
		}
	}

	bonus := float64(n) * activityPerMatch
	if bonus > maxActivityBonus {
		bonus = maxActivityBonus
	}
	return bonus
}
