package integrator

import "fmt"

// Stage is one of the four derivative evaluations of an RK4 step.
type Stage uint8

const (
	// Stage1 evaluates at the start of the step.
	Stage1 Stage = iota + 1
	// Stage2 evaluates at the midpoint.
	Stage2
	// Stage3 evaluates at the midpoint again.
	Stage3
	// Stage4 evaluates at the end of the step.
	Stage4
)

// UnrecognizedStageError is raised (as a panic) when a Stage outside of Stage1..Stage4 is used.
type UnrecognizedStageError struct {
	Stage Stage
}

func (e *UnrecognizedStageError) Error() string {
	return fmt.Sprintf("integrator: unrecognized RK4 stage %d", uint8(e.Stage))
}

func (s Stage) String() string {
	switch s {
	case Stage1:
		return "k1"
	case Stage2:
		return "k2"
	case Stage3:
		return "k3"
	case Stage4:
		return "k4"
	}
	panic(&UnrecognizedStageError{s})
}

// Abscissa returns the time at which this stage evaluates the derivative.
func (s Stage) Abscissa(t0, h float64) float64 {
	switch s {
	case Stage1:
		return t0
	case Stage2, Stage3:
		return t0 + half*h
	case Stage4:
		return t0 + h
	}
	panic(&UnrecognizedStageError{s})
}

// Ordinate returns the value at which this stage evaluates the derivative, where k is the slope
// used to get there (ignored for Stage1).
func (s Stage) Ordinate(y0, h, k float64) float64 {
	switch s {
	case Stage1:
		return y0
	case Stage2, Stage3:
		return y0 + half*k*h
	case Stage4:
		return y0 + k*h
	}
	panic(&UnrecognizedStageError{s})
}
