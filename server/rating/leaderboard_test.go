package rating

import (
	"math"
	"testing"
	"time"
)

// rosterWithStates builds a states map with fixed rated-match counts and
// ratings, bypassing the replay: leaderboard scoring only reads the output.
func rosterWithStates(seed map[PlayerID]State) (roster []PlayerID, states map[PlayerID]*State) {
	states = make(map[PlayerID]*State, len(seed))
	for id := range seed {
		roster = append(roster, id)
	}
	// Deterministic roster order for the stable sort.
	for i := 0; i < len(roster); i++ {
		for j := i + 1; j < len(roster); j++ {
			if roster[j] < roster[i] {
				roster[i], roster[j] = roster[j], roster[i]
			}
		}
	}
	for id, s := range seed {
		cp := s
		states[id] = &cp
	}
	return roster, states
}

func playerAt(rating, rd float64, rated int) State {
	return State{
		Rating: Rating{Rating: rating, RD: rd, Volatility: DefaultVolatility},
		Meta:   Meta{RatedMatches: rated, Peak: rating},
	}
}

func TestStandingsEligibility(t *testing.T) {
	roster, states := rosterWithStates(map[PlayerID]State{
		"four": playerAt(1700, 100, MinLeaderboardMatches-1),
		"five": playerAt(1700, 100, MinLeaderboardMatches),
	})
	rows := Standings(roster, states, nil, time.Now())
	if len(rows) != 1 || rows[0].Player != "five" {
		t.Fatalf("standings = %+v, want only the five-match player", rows)
	}
}

func TestStandingsConservativeRating(t *testing.T) {
	roster, states := rosterWithStates(map[PlayerID]State{
		"solid":  playerAt(1600, 50, 10),  // cons 1500
		"flashy": playerAt(1700, 150, 10), // cons 1400
	})
	rows := Standings(roster, states, nil, time.Now())
	if rows[0].Player != "solid" {
		t.Errorf("high-RD player outranked the proven one: %+v", rows)
	}
	if rows[0].Conservative != 1500 {
		t.Errorf("conservative = %v, want 1500", rows[0].Conservative)
	}
}

func TestStandingsStableTieBreak(t *testing.T) {
	roster, states := rosterWithStates(map[PlayerID]State{
		"alpha": playerAt(1600, 100, 10),
		"beta":  playerAt(1600, 100, 10),
	})
	rows := Standings(roster, states, nil, time.Now())
	if rows[0].Player != "alpha" || rows[1].Player != "beta" {
		t.Errorf("tie break lost roster order: %+v", rows)
	}
}

func TestOpponentStrengthFallbacks(t *testing.T) {
	now := dateTime("2025-06-01")
	_, states := rosterWithStates(map[PlayerID]State{
		"me":    playerAt(1600, 80, 10),
		"tough": playerAt(1950, 80, 10),
	})

	recent := []Match{matchAt("me", "tough", "me", 20, true, "2025-05-20", 0)}
	if got, want := opponentStrength("me", states, recent, now), 1.3; math.Abs(got-want) > 1e-9 {
		t.Errorf("recent-win strength = %v, want %v", got, want)
	}

	stale := []Match{matchAt("me", "tough", "me", 20, true, "2024-01-15", 0)}
	if got, want := opponentStrength("me", states, stale, now), 1.3*staleWinPenalty; math.Abs(got-want) > 1e-9 {
		t.Errorf("stale-win strength = %v, want %v", got, want)
	}

	winless := []Match{matchAt("me", "tough", "tough", 20, true, "2025-05-20", 0)}
	if got, want := opponentStrength("me", states, winless, now), winlessFactor; math.Abs(got-want) > 1e-9 {
		t.Errorf("winless strength = %v, want %v", got, want)
	}
}

func TestOpponentStrengthCapped(t *testing.T) {
	now := dateTime("2025-06-01")
	_, states := rosterWithStates(map[PlayerID]State{
		"me":    playerAt(1600, 80, 10),
		"giant": playerAt(2600, 40, 50),
	})
	wins := []Match{matchAt("me", "giant", "me", 20, true, "2025-05-20", 0)}
	if got := opponentStrength("me", states, wins, now); got != maxStrengthFactor {
		t.Errorf("strength = %v, want capped at %v", got, maxStrengthFactor)
	}
}

func TestActivityBonus(t *testing.T) {
	now := dateTime("2025-06-01")
	var matches []Match
	// Eight recent rated, one old, one recent casual.
	for i := 0; i < 8; i++ {
		matches = append(matches, matchAt("me", "you", "me", 20, true, "2025-05-20", i))
	}
	matches = append(matches, matchAt("me", "you", "me", 20, true, "2025-01-01", 0))
	matches = append(matches, matchAt("me", "you", "me", 20, false, "2025-05-21", 0))

	if got, want := activityBonus("me", matches, now), 8*activityPerMatch; got != want {
		t.Errorf("activity bonus = %v, want %v", got, want)
	}

	// Cap at 100 regardless of volume.
	for i := 0; i < 30; i++ {
		matches = append(matches, matchAt("me", "you", "you", 20, true, "2025-05-25", i))
	}
	if got := activityBonus("me", matches, now); got != maxActivityBonus {
		t.Errorf("activity bonus = %v, want capped at %v", got, maxActivityBonus)
	}
}

func TestStandingsScoreComposition(t *testing.T) {
	now := dateTime("2025-06-01")
	roster, states := rosterWithStates(map[PlayerID]State{
		"me":  playerAt(1700, 100, 10),
		"you": playerAt(1500, 100, 10),
	})
	matches := []Match{matchAt("me", "you", "me", 20, true, "2025-05-20", 0)}

	rows := Standings(roster, states, matches, now)
	var me *Standing
	for i := range rows {
		if rows[i].Player == "me" {
			me = &rows[i]
		}
	}
	if me == nil {
		t.Fatal("player missing from standings")
	}

	cons := 1700.0 - 2*100
	want := conservativeShare*cons + strengthShare*cons*1.0 + activityShare*activityPerMatch
	if math.Abs(me.Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", me.Score, want)
	}
}
