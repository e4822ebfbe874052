package rating

import (
	"fmt"
	"math"
)

// Glicko-2 constants (paper values).
const (
	Scale             = 173.7178 // rating scale between r <-> mu
	Tau               = 0.5      // volatility change constraint
	Epsilon           = 1e-6     // solver convergence on the internal scale
	DefaultRating     = 1500.0
	DefaultRD         = 350.0
	DefaultVolatility = 0.06
)

// toInternal converts public (rating, RD) to the internal (mu, phi) scale.
func toInternal(rating, rd float64) (mu, phi float64) {
	return (rating - DefaultRating) / Scale, rd / Scale
}

// fromInternal is the inverse of toInternal.
func fromInternal(mu, phi float64) (rating, rd float64) {
	return mu*Scale + DefaultRating, phi * Scale
}

// g dampens the influence of opponents with uncertain ratings.
// g(0) == 1 and g decreases monotonically in phi.
func g(phi float64) float64 {
	return 1 / math.Sqrt(1+3*phi*phi/(math.Pi*math.Pi))
}

// expectedScore is E(mu, mu_j, phi_j): the win probability estimate against an
// opponent at mu_j with deviation phi_j.
func expectedScore(mu, muJ, phiJ float64) float64 {
	return 1 / (1 + math.Exp(-g(phiJ)*(mu-muJ)))
}

// maxBracketSteps bounds the downward walk when bracketing the volatility
// root. Bounded input (RD <= 350, sane deltas) converges within a handful of
// steps; running past this means the caller fed the solver garbage.
const maxBracketSteps = 1000

// solveVolatility finds the new volatility sigma' for a player with
// pre-period deviation phi, estimated variance v, improvement delta and
// current volatility sigma. It solves f(x) = 0 for x = ln(sigma'^2) with a
// bisection-damped secant iteration (the "Illinois" variant from the Glicko-2
// example procedure): when the new point C falls on the same side as B, fA is
// halved instead of moving A. eps is the convergence threshold on |B-A|;
// production callers pass Epsilon.
//
// The iteration schedule is part of the contract: replay determinism depends
// on every implementation of this routine visiting identical points.
func solveVolatility(phi, v, delta, sigma, eps float64) float64 {
	a := math.Log(sigma * sigma)
	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phi*phi - v - ex)
		den := 2 * (phi*phi + v + ex) * (phi*phi + v + ex)
		return num/den - (x-a)/(Tau*Tau)
	}

	A := a
	var B float64
	if delta*delta > phi*phi+v {
		B = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1.0
		for f(a-k*Tau) < 0 {
			k++
			if k > maxBracketSteps {
				// A wrong volatility silently corrupts every later rating,
				// so an impossible bracket is fatal by contract.
				panic(fmt.Sprintf("rating: no volatility bracket for phi=%g v=%g delta=%g sigma=%g", phi, v, delta, sigma))
			}
		}
		B = a - k*Tau
	}

	fA, fB := f(A), f(B)
	for math.Abs(B-A) > eps {
		C := A + (A-B)*fA/(fB-fA)
		fC := f(C)
		if fC*fB < 0 {
			A, fA = B, fB
		} else {
			fA /= 2
		}
		B, fB = C, fC
	}
	return math.Exp(A / 2)
}
