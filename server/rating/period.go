package rating

import "math"

// periodMatch is one weighted outcome inside a rating period.
type periodMatch struct {
	a, b   PlayerID
	winner PlayerID
	weight float64
}

// internalState is a player's (mu, phi, sigma) snapshot on the Glicko-2 scale.
type internalState struct {
	mu, phi, sigma float64
}

// applyPeriod runs one rating period (one calendar day) over states.
//
// Every player in states is updated: players with at least one contributing
// match get the full Glicko-2 step, everyone else gets pure deviation growth
// phi' = sqrt(phi^2 + sigma^2). A player whose matches all carry zero weight
// degenerates to the inactive case rather than dividing by zero.
//
// All updates read the pre-period snapshot, so the iteration order over the
// states map cannot influence the numbers.
func applyPeriod(states map[PlayerID]*State, matches []periodMatch) {
	pre := make(map[PlayerID]internalState, len(states))
	for id, s := range states {
		mu, phi := toInternal(s.Rating.Rating, s.Rating.RD)
		pre[id] = internalState{mu: mu, phi: phi, sigma: s.Rating.Volatility}
	}

	for id, s := range states {
		cur := pre[id]

		// Accumulate opponent terms in match order for determinism.
		var vInv, outcomeSum float64
		for _, pm := range matches {
			var opp PlayerID
			switch id {
			case pm.a:
				opp = pm.b
			case pm.b:
				opp = pm.a
			default:
				continue
			}
			o := pre[opp]
			gj := g(o.phi)
			e := expectedScore(cur.mu, o.mu, o.phi)
			vInv += pm.weight * gj * gj * e * (1 - e)
			outcome := 0.0
			if pm.winner == id {
				outcome = 1
			}
			outcomeSum += pm.weight * gj * (outcome - e)
		}

		if vInv <= 0 {
			// No contributing matches this period: deviation grows, rating
			// and volatility stay put.
			phi := math.Sqrt(cur.phi*cur.phi + cur.sigma*cur.sigma)
			s.Rating.Rating, s.Rating.RD = fromInternal(cur.mu, phi)
			continue
		}

		v := 1 / vInv
		delta := v * outcomeSum
		sigma := solveVolatility(cur.phi, v, delta, cur.sigma, Epsilon)
		phiStar := math.Sqrt(cur.phi*cur.phi + sigma*sigma)
		phi := 1 / math.Sqrt(1/(phiStar*phiStar)+1/v)
		mu := cur.mu + phi*phi*outcomeSum

		s.Rating.Rating, s.Rating.RD = fromInternal(mu, phi)
		s.Rating.Volatility = sigma
	}
}

// settleDay folds the post-period rating into the cumulative bookkeeping:
// peak rating and the climb-only tier.
func settleDay(s *State) {
	if s.Rating.Rating > s.Meta.Peak {
		s.Meta.Peak = s.Rating.Rating
	}
	s.Meta.Tier = AssignTier(s.Rating.Rating, s.Meta.RatedMatches, s.Meta.Tier)
}
