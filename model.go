package izhikevich

import "github.com/ChristopherRabotin/izhikevich/integrator"

// snapshot is what both equations see during one step: the parameters and the pre-step state.
type snapshot struct {
	a, b, c, d float64
	v0, u0     float64
	i          float64
}

// dvdt is the membrane potential equation, against the frozen recovery variable.
func dvdt(_, v float64, s snapshot) float64 {
	return 0.04*v*v + 5*v + 140 - s.u0 + s.i
}

// dudt is the recovery equation, against the frozen membrane potential.
func dudt(_, u float64, s snapshot) float64 {
	return s.a * (s.b*s.v0 - u)
}

// Model is an Izhikevich neuron advanced by one fixed step per call to Step.
// It is not safe for concurrent use: a single caller must own it, and updates must happen between steps.
type Model struct {
	params  Parameters
	state   State
	dt      float64
	tableau integrator.Tableau
}

// NewModel returns a new Model starting from (p.V0, p.U0), or a ConfigurationError.
func NewModel(p Parameters, dt float64, tab integrator.Tableau) (*Model, error) {
	if err := validateStep(dt); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	m := &Model{params: p, dt: dt, tableau: tab}
	m.Reset()
	return m, nil
}

// NewDefaultModel returns a model with the default parameters and step.
// Panics if the defaults are not a valid configuration.
func NewDefaultModel() *Model {
	m, err := NewModel(DefaultParameters(), DefaultStep, integrator.Reference)
	if err != nil {
		panic(err)
	}
	return m
}

// Step advances the neuron from time t by one step and returns the new membrane potential.
// isyn is added to the tonic current for this step only.
// A state at or above Threshold is reset instead of integrated.
func (m *Model) Step(t, isyn float64) float64 {
	if m.state.V >= Threshold {
		m.state.V = m.params.C
		m.state.U += m.params.D
		return m.state.V
	}
	s := snapshot{
		a: m.params.A, b: m.params.B, c: m.params.C, d: m.params.D,
		v0: m.state.V, u0: m.state.U,
		i: m.params.I + isyn,
	}
	v := integrator.Integrate(m.tableau, dvdt, t, s.v0, m.dt, s)
	u := integrator.Integrate(m.tableau, dudt, t, s.u0, m.dt, s)
	m.state.V, m.state.U = v, u
	return v
}

// Output returns the membrane potential after the last step.
func (m *Model) Output() float64 {
	return m.state.V
}

// State returns the current state.
func (m *Model) State() State {
	return m.state
}

// Parameters returns the current parameters.
func (m *Model) Parameters() Parameters {
	return m.params
}

// Dt returns the integration step.
func (m *Model) Dt() float64 {
	return m.dt
}

// Tableau returns the RK4 variant in use.
func (m *Model) Tableau() integrator.Tableau {
	return m.tableau
}

// SetParameters replaces all the parameters and restarts from (p.V0, p.U0).
func (m *Model) SetParameters(p Parameters) error {
	if err := p.validate(); err != nil {
		return err
	}
	m.params = p
	m.Reset()
	return nil
}

// SetStep changes the integration step, e.g. after the host changed its sampling period.
func (m *Model) SetStep(dt float64) error {
	if err := validateStep(dt); err != nil {
		return err
	}
	m.dt = dt
	return nil
}

// SetState overrides the state. It is meant for hosts restoring a snapshot and for tests.
func (m *Model) SetState(s State) {
	m.state = s
}

// Reset restarts the neuron from (V0, U0).
func (m *Model) Reset() {
	m.state = State{V: m.params.V0, U: m.params.U0}
}
