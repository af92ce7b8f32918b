package srs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DesdeChaves/valcoin-memoria/internal/domain"
)

func TestRetrievability(t *testing.T) {
	t.Parallel() // Enable parallel execution
	p := NewDefaultParameters()

	// Immediately after review recall probability is 1.
	require.InDelta(t, 1.0, retrievability(p, 0, 5), 1e-12)

	// When elapsed time equals stability, the curve is calibrated to 90%.
	require.InDelta(t, 0.9, retrievability(p, 5, 5), 1e-9)

	// Monotonically decreasing in elapsed time.
	prev := 1.0
	for _, days := range []float64{1, 5, 10, 50, 365} {
		r := retrievability(p, days, 5)
		if r >= prev {
			t.Errorf("Expected retrievability to decrease, got %f after %f", r, prev)
		}
		prev = r
	}

	// Increasing in stability for fixed elapsed time.
	if retrievability(p, 10, 20) <= retrievability(p, 10, 2) {
		t.Error("Expected higher stability to give higher retrievability")
	}
}

func TestInitStability(t *testing.T) {
	t.Parallel() // Enable parallel execution
	p := NewDefaultParameters()

	// Seeds come straight from the first four weights.
	require.Equal(t, p.W[0], initStability(p, domain.RatingAgain))
	require.Equal(t, p.W[1], initStability(p, domain.RatingHard))
	require.Equal(t, p.W[2], initStability(p, domain.RatingGood))
	require.Equal(t, p.W[3], initStability(p, domain.RatingEasy))
}

func TestInitDifficulty(t *testing.T) {
	t.Parallel() // Enable parallel execution
	p := NewDefaultParameters()

	// D0(1) = w[4] + 1 - 1 = w[4]; easier first impressions are lower.
	require.InDelta(t, p.W[4], initDifficulty(p, domain.RatingAgain, true), 1e-12)

	var prevD float64 = 11
	for _, rating := range []domain.Rating{domain.RatingAgain, domain.RatingHard, domain.RatingGood, domain.RatingEasy} {
		d := initDifficulty(p, rating, true)
		if d >= prevD {
			t.Errorf("Expected difficulty to decrease with easier rating, got %f for %s", d, rating)
		}
		if d < 1 || d > 10 {
			t.Errorf("Difficulty %f out of [1, 10] for %s", d, rating)
		}
		prevD = d
	}
}

func TestNextDifficulty(t *testing.T) {
	t.Parallel() // Enable parallel execution
	p := NewDefaultParameters()

	// Again raises difficulty, Easy lowers it, and the result stays clamped.
	d := 5.0
	if nextDifficulty(p, d, domain.RatingAgain) <= d {
		t.Error("Expected Again to raise difficulty")
	}
	if nextDifficulty(p, d, domain.RatingEasy) >= d {
		t.Error("Expected Easy to lower difficulty")
	}

	// Clamps hold at the extremes.
	require.LessOrEqual(t, nextDifficulty(p, 10, domain.RatingAgain), 10.0)
	require.GreaterOrEqual(t, nextDifficulty(p, 1, domain.RatingEasy), 1.0)
}

func TestNextRecallStabilityOrdering(t *testing.T) {
	t.Parallel() // Enable parallel execution
	p := NewDefaultParameters()

	d, s, r := 5.0, 3.0, 0.9
	hard := nextRecallStability(p, d, s, r, domain.RatingHard)
	good := nextRecallStability(p, d, s, r, domain.RatingGood)
	easy := nextRecallStability(p, d, s, r, domain.RatingEasy)

	if !(easy >= good && good >= hard) {
		t.Errorf("Expected S(Easy) >= S(Good) >= S(Hard), got %f, %f, %f", easy, good, hard)
	}
	// Even penalized Hard grows stability from a successful recall.
	if hard <= s {
		t.Errorf("Expected Hard recall to grow stability, got %f from %f", hard, s)
	}
}

func TestNextForgetStability(t *testing.T) {
	t.Parallel() // Enable parallel execution
	p := NewDefaultParameters()

	d, s, r := 5.0, 20.0, 0.9
	forget := nextForgetStability(p, d, s, r)

	// Forgetting never increases stability.
	if forget > s {
		t.Errorf("Expected forget stability <= %f, got %f", s, forget)
	}
	if forget < 0.1 {
		t.Errorf("Expected stability floor of 0.1, got %f", forget)
	}
}

func TestNextInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution
	p := NewDefaultParameters()

	testCases := []struct {
		name      string
		stability float64
		expected  int
	}{
		// At the default 0.9 retention the interval equals the rounded stability.
		{name: "tiny stability clamps to one day", stability: 0.2, expected: 1},
		{name: "stability three", stability: 3.1262, expected: 3},
		{name: "stability fifteen", stability: 15.4722, expected: 15},
		{name: "huge stability clamps to maximum", stability: 1e7, expected: p.MaximumInterval},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := nextInterval(p, tc.stability)
			if got != tc.expected {
				t.Errorf("Expected interval %d for stability %f, got %d", tc.expected, tc.stability, got)
			}
		})
	}

	// A lower retention target stretches the interval.
	relaxed, err := NewParameters(ParametersConfig{RequestRetention: 0.8})
	require.NoError(t, err)
	if nextInterval(relaxed, 10) <= nextInterval(p, 10) {
		t.Error("Expected lower retention target to lengthen intervals")
	}
}

func TestRound4(t *testing.T) {
	t.Parallel() // Enable parallel execution
	require.Equal(t, 3.1416, round4(math.Pi))
	require.Equal(t, 1.2346, round4(1.23456789))
	require.Equal(t, 2.0, round4(2.0))
}
