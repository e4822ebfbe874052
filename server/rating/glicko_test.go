package rating

import (
	"math"
	"testing"
)

func TestInternalScaleRoundTrip(t *testing.T) {
	cases := []struct {
		rating, rd float64
	}{
		{1500, 350},
		{1500, 200},
		{1662.31, 290.32},
		{987.5, 62.1},
		{2400, 30},
	}
	for _, tc := range cases {
		mu, phi := toInternal(tc.rating, tc.rd)
		r, rd := fromInternal(mu, phi)
		if math.Abs(r-tc.rating) > 1e-9 || math.Abs(rd-tc.rd) > 1e-9 {
			t.Errorf("round trip (%v, %v) -> (%v, %v)", tc.rating, tc.rd, r, rd)
		}
	}
}

func TestDefaultsMapToOrigin(t *testing.T) {
	mu, phi := toInternal(DefaultRating, DefaultRD)
	if mu != 0 {
		t.Errorf("mu at default rating = %v, want 0", mu)
	}
	if math.Abs(phi-DefaultRD/Scale) > 1e-12 {
		t.Errorf("phi at default RD = %v", phi)
	}
}

func TestG(t *testing.T) {
	if got := g(0); got != 1 {
		t.Fatalf("g(0) = %v, want 1", got)
	}
	// Strictly decreasing for growing phi.
	prev := g(0)
	for phi := 0.1; phi <= 3.0; phi += 0.1 {
		cur := g(phi)
		if cur >= prev {
			t.Fatalf("g not strictly decreasing at phi=%v: %v >= %v", phi, cur, prev)
		}
		prev = cur
	}
}

func TestExpectedScoreSymmetry(t *testing.T) {
	// Equal players: a coin flip.
	if e := expectedScore(0, 0, 0.5); math.Abs(e-0.5) > 1e-12 {
		t.Errorf("E for equal players = %v, want 0.5", e)
	}
	// E(a vs b) + E(b vs a) == 1 for equal deviations.
	ea := expectedScore(0.4, -0.2, 1.1)
	eb := expectedScore(-0.2, 0.4, 1.1)
	if math.Abs(ea+eb-1) > 1e-12 {
		t.Errorf("E(a,b)+E(b,a) = %v, want 1", ea+eb)
	}
}

// Values from the worked example in Glickman's Glicko-2 note: a 1500/200
// player beating 1400/30 and losing to 1550/100 and 1700/300 keeps sigma
// essentially at 0.06.
func TestSolveVolatilityWorkedExample(t *testing.T) {
	mu, phi := toInternal(1500, 200)

	opps := []struct {
		r, rd, score float64
	}{
		{1400, 30, 1},
		{1550, 100, 0},
		{1700, 300, 0},
	}
	var vInv, sum float64
	for _, o := range opps {
		oMu, oPhi := toInternal(o.r, o.rd)
		gj := g(oPhi)
		e := expectedScore(mu, oMu, oPhi)
		vInv += gj * gj * e * (1 - e)
		sum += gj * (o.score - e)
	}
	v := 1 / vInv
	delta := v * sum

	sigma := solveVolatility(phi, v, delta, 0.06, Epsilon)
	if math.Abs(sigma-0.05999) > 5e-4 {
		t.Errorf("sigma = %v, want about 0.05999", sigma)
	}
}

func TestSolveVolatilityEpsilonInjectable(t *testing.T) {
	// A coarse epsilon must still land near the converged answer.
	fine := solveVolatility(1.2, 1.8, 0.5, 0.06, Epsilon)
	coarse := solveVolatility(1.2, 1.8, 0.5, 0.06, 1e-2)
	if math.Abs(fine-coarse) > 1e-2 {
		t.Errorf("fine=%v coarse=%v diverge beyond their tolerance", fine, coarse)
	}
}
