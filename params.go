package izhikevich

import (
	"fmt"
	"math"
)

const (
	// Threshold is the membrane potential (mV) at or above which the neuron is reset.
	Threshold = 30.0
	// DefaultStep is the default integration step, in ms.
	DefaultStep = 0.1
)

// Parameters of an Izhikevich neuron. V0 and U0 are the state the model starts (and restarts) from.
type Parameters struct {
	A  float64 // time scale of the recovery variable
	B  float64 // sensitivity of the recovery variable to the membrane potential
	C  float64 // after-spike reset of the membrane potential (mV)
	D  float64 // after-spike increment of the recovery variable
	V0 float64 // initial membrane potential (mV)
	U0 float64 // initial recovery variable
	I  float64 // tonic input current
}

// DefaultParameters returns the regular spiking parameters with no input current.
func DefaultParameters() Parameters {
	p := Parameters{A: 0.02, B: 0.2, C: -65, D: 2, V0: -65}
	p.U0 = p.V0 * p.B
	return p
}

func (p Parameters) String() string {
	return fmt.Sprintf("a=%g b=%g c=%g d=%g v0=%g u0=%g I=%g", p.A, p.B, p.C, p.D, p.V0, p.U0, p.I)
}

// validate only checks what the arithmetic needs: finite values.
func (p Parameters) validate() error {
	for _, f := range []struct {
		name string
		val  float64
	}{{"a", p.A}, {"b", p.B}, {"c", p.C}, {"d", p.D}, {"v0", p.V0}, {"u0", p.U0}, {"I", p.I}} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return &ConfigurationError{Field: f.name, Value: f.val, Err: ErrNonFinite}
		}
	}
	return nil
}

func validateStep(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return &ConfigurationError{Field: "dt", Value: dt, Err: ErrNonFinite}
	}
	if dt <= 0 {
		return &ConfigurationError{Field: "dt", Value: dt, Err: ErrNonPositiveStep}
	}
	return nil
}

// State is the dynamical state of the neuron.
type State struct {
	V float64 // membrane potential (mV)
	U float64 // recovery variable
}

// Spiking returns whether this state is at or above the spike threshold.
func (s State) Spiking() bool {
	return s.V >= Threshold
}

func (s State) String() string {
	return fmt.Sprintf("v=%.6f u=%.6f", s.V, s.U)
}
