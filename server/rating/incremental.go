package rating

// UpdatePair applies one freshly recorded match to its two participants
// without replaying history. a and b are the current derived states of m.A
// and m.B; both are updated in place.
//
// The match is scored as a single-match rating period through the same core
// routine the replay uses, so the two paths cannot drift in the formulas.
// What this path deliberately does NOT do:
//
//   - the daily-cap and repeated-opponent counters are not consulted (the
//     match gets its plain format weight), and
//   - no deviation growth is applied for any date gap.
//
// Both are known fast-path gaps; the next full Replay is authoritative and
// reconciles them. Casual and unresolved matches are a no-op.
func UpdatePair(a, b *State, m Match) {
	w := baseWeight(m)
	if w == 0 {
		return
	}

	a.Meta.RatedMatches++
	b.Meta.RatedMatches++

	states := map[PlayerID]*State{m.A: a, m.B: b}
	applyPeriod(states, []periodMatch{{a: m.A, b: m.B, winner: m.Winner, weight: w}})

	settleDay(a)
	settleDay(b)
}
