package srs

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameters is returned when a parameter set fails validation.
var ErrInvalidParameters = errors.New("srs: invalid parameters")

// DefaultWeights is the FSRS-4.5 default weight vector.
var DefaultWeights = [19]float64{
	0.4072, 1.1829, 3.1262, 15.4722, // initial stability per rating
	7.2102, 0.5316, // initial difficulty
	1.0651, 0.0234, // difficulty update and mean reversion
	1.616, 0.1544, 1.0824, // recall stability growth
	1.9813, 0.0953, 0.2975, 2.2042, // post-lapse stability
	0.2407, 2.9466, // hard penalty, easy bonus
	0.5034, 0.6567, // reserved short-term terms, kept for tuned vectors
}

// Default shape constants of the forgetting curve and scheduling caps.
const (
	DefaultRequestRetention = 0.9
	DefaultMaximumInterval  = 36500
	DefaultDecay            = -0.5
)

// Parameters is the immutable configuration of the scheduler engine.
// Load it once at startup and pass it by value; it is safe to share
// across goroutines.
type Parameters struct {
	// W is the tuned weight vector of the forgetting-curve model.
	W [19]float64

	// RequestRetention is the target probability of recall the interval
	// calculation solves for. Strictly between 0 and 1.
	RequestRetention float64

	// MaximumInterval caps the promised interval, in days.
	MaximumInterval int

	// Decay is the (negative) exponent of the power forgetting curve.
	Decay float64

	// Factor is derived from Decay so that retrievability equals 0.9
	// when elapsed time equals stability. Set by NewParameters.
	Factor float64
}

// ParametersConfig carries optional overrides for NewParameters. Zero
// values fall back to the defaults.
type ParametersConfig struct {
	Weights          []float64
	RequestRetention float64
	MaximumInterval  int
	Decay            float64
}

// NewDefaultParameters returns the engine defaults: FSRS-4.5 weights,
// 0.9 target retention, a 100-year interval cap and decay -0.5.
func NewDefaultParameters() Parameters {
	p, _ := NewParameters(ParametersConfig{})
	return p
}

// NewParameters builds a validated Parameters value from the config,
// filling unset fields with defaults and deriving Factor from Decay.
func NewParameters(cfg ParametersConfig) (Parameters, error) {
	p := Parameters{
		W:                DefaultWeights,
		RequestRetention: DefaultRequestRetention,
		MaximumInterval:  DefaultMaximumInterval,
		Decay:            DefaultDecay,
	}

	if len(cfg.Weights) > 0 {
		if len(cfg.Weights) != len(p.W) {
			return Parameters{}, fmt.Errorf("%w: expected %d weights, got %d",
				ErrInvalidParameters, len(p.W), len(cfg.Weights))
		}
		copy(p.W[:], cfg.Weights)
	}
	if cfg.RequestRetention != 0 {
		p.RequestRetention = cfg.RequestRetention
	}
	if cfg.MaximumInterval != 0 {
		p.MaximumInterval = cfg.MaximumInterval
	}
	if cfg.Decay != 0 {
		p.Decay = cfg.Decay
	}

	if err := p.validate(); err != nil {
		return Parameters{}, err
	}

	p.Factor = math.Pow(0.9, 1.0/p.Decay) - 1.0
	return p, nil
}

func (p Parameters) validate() error {
	for i, w := range p.W {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return fmt.Errorf("%w: w[%d] = %f", ErrInvalidParameters, i, w)
		}
	}
	if p.RequestRetention <= 0 || p.RequestRetention >= 1 {
		return fmt.Errorf("%w: request retention %f outside (0, 1)",
			ErrInvalidParameters, p.RequestRetention)
	}
	if p.MaximumInterval < 1 {
		return fmt.Errorf("%w: maximum interval %d", ErrInvalidParameters, p.MaximumInterval)
	}
	if p.Decay >= 0 {
		return fmt.Errorf("%w: decay %f must be negative", ErrInvalidParameters, p.Decay)
	}
	return nil
}
