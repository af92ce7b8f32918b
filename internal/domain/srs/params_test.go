package srs

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultParameters(t *testing.T) {
	t.Parallel() // Enable parallel execution
	p := NewDefaultParameters()

	if p.W != DefaultWeights {
		t.Errorf("Expected default weights, got %v", p.W)
	}
	if p.RequestRetention != DefaultRequestRetention {
		t.Errorf("Expected request retention %f, got %f", DefaultRequestRetention, p.RequestRetention)
	}
	if p.MaximumInterval != DefaultMaximumInterval {
		t.Errorf("Expected maximum interval %d, got %d", DefaultMaximumInterval, p.MaximumInterval)
	}
	if p.Decay != DefaultDecay {
		t.Errorf("Expected decay %f, got %f", DefaultDecay, p.Decay)
	}

	// With decay -0.5 the factor simplifies to 0.9^-2 - 1 = 19/81.
	require.InDelta(t, 19.0/81.0, p.Factor, 1e-12)
}

func TestNewParametersOverrides(t *testing.T) {
	t.Parallel() // Enable parallel execution
	weights := make([]float64, 19)
	for i := range weights {
		weights[i] = 1.0
	}

	p, err := NewParameters(ParametersConfig{
		Weights:          weights,
		RequestRetention: 0.85,
		MaximumInterval:  365,
		Decay:            -0.4,
	})
	require.NoError(t, err)

	require.Equal(t, 0.85, p.RequestRetention)
	require.Equal(t, 365, p.MaximumInterval)
	require.Equal(t, -0.4, p.Decay)
	require.InDelta(t, math.Pow(0.9, 1.0/-0.4)-1, p.Factor, 1e-12)
	for i, w := range p.W {
		require.Equalf(t, 1.0, w, "w[%d]", i)
	}
}

func TestNewParametersValidation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name string
		cfg  ParametersConfig
	}{
		{
			name: "wrong weight count",
			cfg:  ParametersConfig{Weights: []float64{0.4, 1.1}},
		},
		{
			name: "negative weight",
			cfg: ParametersConfig{Weights: func() []float64 {
				w := make([]float64, 19)
				w[3] = -1
				return w
			}()},
		},
		{
			name: "retention at one",
			cfg:  ParametersConfig{RequestRetention: 1},
		},
		{
			name: "negative retention",
			cfg:  ParametersConfig{RequestRetention: -0.5},
		},
		{
			name: "negative maximum interval",
			cfg:  ParametersConfig{MaximumInterval: -10},
		},
		{
			name: "positive decay",
			cfg:  ParametersConfig{Decay: 0.5},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewParameters(tc.cfg)
			require.Error(t, err)
			if !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("Expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}
