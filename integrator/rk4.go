package integrator

import (
	"fmt"
	"strings"
)

const (
	half     = 1 / 2.0
	oneSixth = 1 / 6.0
	oneThird = 1 / 3.0
)

// Tableau selects the RK4 variant.
type Tableau uint8

const (
	// Reference reuses k1 to reach the third and fourth stages and weighs all four slopes equally,
	// i.e. y0 + h(k1+k2+k3+k4)/6. It matches the traces of the RTXI plugin and is the default.
	Reference Tableau = iota
	// Classical is the textbook RK4: y0 + h(k1+2k2+2k3+k4)/6 with k3 reached via k2 and k4 via k3.
	// Both the stage paths and the weights differ from Reference.
	Classical
)

func (tab Tableau) String() string {
	switch tab {
	case Reference:
		return "reference"
	case Classical:
		return "classical"
	}
	panic("cannot stringify unknown tableau")
}

// ParseTableau returns the Tableau from its name (case insensitive). An empty name is the Reference.
func ParseTableau(name string) (Tableau, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "reference":
		return Reference, nil
	case "classical", "textbook":
		return Classical, nil
	}
	return Reference, fmt.Errorf("integrator: unknown tableau `%s`", name)
}

// Derivative returns dy/dt at (t, y). The parameter snapshot p is the same for all four stages of a step.
type Derivative[P any] func(t, y float64, p P) float64

// Integrate returns the RK4 estimate of y(t0+h) for dy/dt = f(t, y, p).
// Panics if the step size is not positive. Integrate holds no state and does not allocate.
func Integrate[P any](tab Tableau, f Derivative[P], t0, y0, h float64, p P) float64 {
	if h <= 0 {
		panic("integrator: step size must be positive")
	}
	k1 := f(Stage1.Abscissa(t0, h), Stage1.Ordinate(y0, h, 0), p)
	k2 := f(Stage2.Abscissa(t0, h), Stage2.Ordinate(y0, h, k1), p)
	if tab == Reference {
		k3 := f(Stage3.Abscissa(t0, h), Stage3.Ordinate(y0, h, k1), p)
		k4 := f(Stage4.Abscissa(t0, h), Stage4.Ordinate(y0, h, k1), p)
		return y0 + (h*(k1+k2+k3+k4))/6
	}
	k3 := f(Stage3.Abscissa(t0, h), Stage3.Ordinate(y0, h, k2), p)
	k4 := f(Stage4.Abscissa(t0, h), Stage4.Ordinate(y0, h, k3), p)
	return y0 + h*(oneSixth*(k1+k4)+oneThird*(k2+k3))
}
