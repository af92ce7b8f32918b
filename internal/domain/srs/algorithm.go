package srs

import (
	"math"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
)

// retrievability estimates the probability of recall after elapsedDays
// given the current stability: R(t, S) = (1 + Factor*t/S)^Decay. It
// decreases monotonically with elapsed time and increases with stability.
func retrievability(p Parameters, elapsedDays, stability float64) float64 {
	return math.Pow(1+p.Factor*elapsedDays/stability, p.Decay)
}

// initStability seeds stability from the first rating: S0(G) = w[G-1].
func initStability(p Parameters, rating domain.Rating) float64 {
	return clampStability(p.W[rating-1])
}

// initDifficulty seeds difficulty from the first rating:
// D0(G) = w[4] - e^(w[5]*(G-1)) + 1. When clamp is false the raw value
// is returned, which the mean-reversion target needs.
func initDifficulty(p Parameters, rating domain.Rating, clamp bool) float64 {
	d := p.W[4] - math.Exp(p.W[5]*float64(rating-1)) + 1
	if clamp {
		return clampDifficulty(d)
	}
	return d
}

// nextDifficulty applies the rating-dependent delta with linear damping,
// then reverts toward the Easy seed difficulty with weight w[7]:
//
//	dD  = -w[6] * (G - 3)
//	D'  = D + dD * (10 - D) / 9
//	D'' = w[7]*D0(Easy) + (1 - w[7])*D'
func nextDifficulty(p Parameters, difficulty float64, rating domain.Rating) float64 {
	deltaD := -p.W[6] * (float64(rating) - 3)
	dPrime := difficulty + deltaD*(10-difficulty)/9
	target := initDifficulty(p, domain.RatingEasy, false)
	return clampDifficulty(p.W[7]*target + (1-p.W[7])*dPrime)
}

// nextRecallStability grows stability after a successful recall. Lower
// retrievability at review time yields a larger gain (testing effect);
// Hard is penalized by w[15] < 1 and Easy boosted by w[16] > 1.
func nextRecallStability(p Parameters, d, s, r float64, rating domain.Rating) float64 {
	hardPenalty := 1.0
	if rating == domain.RatingHard {
		hardPenalty = p.W[15]
	}
	easyBonus := 1.0
	if rating == domain.RatingEasy {
		easyBonus = p.W[16]
	}
	return clampStability(s * (1 + math.Exp(p.W[8])*
		(11-d)*
		math.Pow(s, -p.W[9])*
		(math.Exp((1-r)*p.W[10])-1)*
		hardPenalty*easyBonus))
}

// nextForgetStability collapses stability after a lapse:
//
//	S' = w[11] * D^(-w[12]) * ((S+1)^w[13] - 1) * e^((1-R)*w[14])
//
// capped at the previous stability so forgetting never increases it.
func nextForgetStability(p Parameters, d, s, r float64) float64 {
	sf := p.W[11] *
		math.Pow(d, -p.W[12]) *
		(math.Pow(s+1, p.W[13]) - 1) *
		math.Exp((1-r)*p.W[14])
	return clampStability(math.Min(sf, s))
}

// nextInterval solves the forgetting curve for the elapsed time at which
// retrievability falls to the target retention:
//
//	I(S) = round((S / Factor) * (retention^(1/Decay) - 1))
//
// clamped to [1, MaximumInterval] days.
func nextInterval(p Parameters, stability float64) int {
	ivl := stability / p.Factor * (math.Pow(p.RequestRetention, 1.0/p.Decay) - 1)
	days := int(math.Round(ivl))
	if days < 1 {
		days = 1
	}
	if days > p.MaximumInterval {
		days = p.MaximumInterval
	}
	return days
}

// clampStability keeps stability strictly positive.
func clampStability(s float64) float64 {
	return math.Max(s, 0.1)
}

// clampDifficulty keeps difficulty within [1, 10].
func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}

// round4 rounds to the fixed 4-decimal precision persisted state uses,
// keeping state comparisons deterministic across runs.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
