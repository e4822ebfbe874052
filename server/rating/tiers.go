package rating

// Threshold is one rung of the tier ladder. A tier is earned the moment both
// minimums hold simultaneously; once earned it is never revoked.
type Threshold struct {
	Tier       int
	Name       string
	MinRating  float64
	MinMatches int
}

// Tiers is the club ladder, ordered from the floor up.
var Tiers = []Threshold{
	{Tier: 0, Name: "Novice", MinRating: 0, MinMatches: 0},
	{Tier: 1, Name: "Bronze", MinRating: 1400, MinMatches: 10},
	{Tier: 2, Name: "Silver", MinRating: 1550, MinMatches: 20},
	{Tier: 3, Name: "Gold", MinRating: 1700, MinMatches: 35},
	{Tier: 4, Name: "Platinum", MinRating: 1850, MinMatches: 50},
	{Tier: 5, Name: "Master", MinRating: 2000, MinMatches: 75},
	{Tier: 6, Name: "Legend", MinRating: 2200, MinMatches: 100},
}

// AssignTier returns the tier for the given rating and career match count,
// never below previous: tiers climb only, even when the rating later drops.
func AssignTier(rating float64, matches, previous int) int {
	earned := 0
	for i := len(Tiers) - 1; i >= 0; i-- {
		t := Tiers[i]
		if rating >= t.MinRating && matches >= t.MinMatches {
			earned = t.Tier
			break
		}
	}
	if earned < previous {
		return previous
	}
	return earned
}

// TierName maps a tier number to its display name.
func TierName(tier int) string {
	for _, t := range Tiers {
		if t.Tier == tier {
			return t.Name
		}
	}
	return Tiers[0].Name
}
