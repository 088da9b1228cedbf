package izhikevich

import (
	"github.com/ChristopherRabotin/ode"
)

// CoupledReference is an ode.Integrable which steps (v, u) jointly with the textbook RK4 of the ode package.
// Unlike Model, each stage sees the evolving value of the other variable. It exists to measure how far the
// frozen coupling of Model drifts from the coupled system; the spike reset is the same as Model's.
type CoupledReference struct {
	Params    Parameters
	Stimulus  Stimulus
	Spikes    []float64 // spike times (ms)
	state     State
	dt        float64
	cycles    uint64
	stopAt    uint64
	isyn      float64
	resetting bool
}

// NewCoupledReference returns a new CoupledReference starting from (p.V0, p.U0), or a ConfigurationError.
func NewCoupledReference(p Parameters, dt float64, stim Stimulus) (*CoupledReference, error) {
	if err := validateStep(dt); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &CoupledReference{Params: p, Stimulus: stim, state: State{p.V0, p.U0}, dt: dt}, nil
}

// GetState returns the state vector [v u] and samples the input for the upcoming step.
func (r *CoupledReference) GetState() []float64 {
	r.resetting = r.state.Spiking()
	r.isyn = 0
	if r.Stimulus != nil {
		r.isyn = r.Stimulus.Current(r.T())
	}
	return []float64{r.state.V, r.state.U}
}

// SetState sets the state at the end of a step, or applies the reset if the step started above threshold.
func (r *CoupledReference) SetState(t float64, s []float64) {
	if r.resetting {
		r.Spikes = append(r.Spikes, r.T())
		r.state.V = r.Params.C
		r.state.U += r.Params.D
	} else {
		r.state.V, r.state.U = s[0], s[1]
	}
	r.cycles++
}

// Stop implements the ode.Integrable interface.
func (r *CoupledReference) Stop(t float64) bool {
	return r.cycles >= r.stopAt
}

// Func returns [dv/dt du/dt]. There is no motion during a reset step.
func (r *CoupledReference) Func(t float64, s []float64) []float64 {
	if r.resetting {
		return []float64{0, 0}
	}
	v, u := s[0], s[1]
	return []float64{
		0.04*v*v + 5*v + 140 - u + r.Params.I + r.isyn,
		r.Params.A * (r.Params.B*v - u),
	}
}

// PropagateFor runs the given number of cycles. Blocking.
func (r *CoupledReference) PropagateFor(cycles uint64) {
	r.stopAt = r.cycles + cycles
	ode.NewRK4(0, r.dt, r).Solve() // Blocking.
}

// T returns the time at the start of the next cycle (ms).
func (r *CoupledReference) T() float64 {
	return float64(r.cycles) * r.dt
}

// State returns the current state.
func (r *CoupledReference) State() State {
	return r.state
}

// Stats returns the statistics of the spike train so far.
func (r *CoupledReference) Stats() SpikeStats {
	return NewSpikeStats(r.Spikes, r.T())
}
