package integrator

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

type linear struct {
	rate, target float64
}

// decay is dy/dt = rate*(target - y).
func decay(_, y float64, p linear) float64 {
	return p.rate * (p.target - y)
}

func constant(_, _ float64, c float64) float64 {
	return c
}

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("code did not panic")
		}
	}()
	f()
}

func TestIntegrateConstant(t *testing.T) {
	// A constant slope gives the same k for all four stages.
	if y := Integrate(Classical, constant, 0, 1, 0.5, 2.); !scalar.EqualWithinAbs(y, 2, 1e-15) {
		t.Fatalf("classical: y=%f != 2", y)
	}
	// Equal weights over six: two thirds of the Euler increment.
	if y := Integrate(Reference, constant, 0, 1, 0.5, 3.); !scalar.EqualWithinAbs(y, 2, 1e-15) {
		t.Fatalf("reference: y=%f != 2", y)
	}
}

func TestIntegrateClassicalLinear(t *testing.T) {
	p := linear{rate: 0.02, target: -13}
	y := Integrate(Classical, decay, 0, -10, 0.1, p)
	exp := -13 + 3*math.Exp(-0.002)
	if !scalar.EqualWithinAbs(y, exp, 1e-10) {
		t.Fatalf("y=%.12f exp=%.12f", y, exp)
	}
}

func TestIntegrateReferenceLinear(t *testing.T) {
	p := linear{rate: 0.02, target: -13}
	if y := Integrate(Reference, decay, 0, -10, 0.1, p); !scalar.EqualWithinAbs(y, -10.003996, 1e-12) {
		t.Fatalf("y=%.12f", y)
	}
	// At the fixed point nothing moves, whatever the tableau.
	for _, tab := range []Tableau{Reference, Classical} {
		if y := Integrate(tab, decay, 0, -13, 0.1, p); y != -13 {
			t.Fatalf("%s: fixed point moved to %f", tab, y)
		}
	}
}

func TestIntegrateStages(t *testing.T) {
	// Record where the derivative is evaluated.
	type call struct{ t, y float64 }
	var calls []call
	f := func(t, y float64, _ struct{}) float64 {
		calls = append(calls, call{t, y})
		return float64(len(calls)) // k1=1, k2=2, k3=3, k4=4
	}
	// Equal weights.
	if y := Integrate(Reference, f, 1, 10, 2, struct{}{}); !scalar.EqualWithinAbs(y, 10+20/6., 1e-12) {
		t.Fatalf("reference: y=%f", y)
	}
	exp := []call{{1, 10}, {2, 11}, {2, 11}, {3, 12}}
	for i, c := range calls {
		if c != exp[i] {
			t.Fatalf("reference stage %d at %+v, expected %+v", i+1, c, exp[i])
		}
	}
	calls = nil
	// 1-2-2-1 weights.
	if y := Integrate(Classical, f, 1, 10, 2, struct{}{}); !scalar.EqualWithinAbs(y, 15, 1e-12) {
		t.Fatalf("classical: y=%f", y)
	}
	exp = []call{{1, 10}, {2, 11}, {2, 12}, {3, 16}}
	for i, c := range calls {
		if c != exp[i] {
			t.Fatalf("classical stage %d at %+v, expected %+v", i+1, c, exp[i])
		}
	}
}

func TestIntegrateNoAlloc(t *testing.T) {
	p := linear{rate: 0.02, target: -13}
	allocs := testing.AllocsPerRun(100, func() {
		Integrate(Reference, decay, 0, -10, 0.1, p)
	})
	if allocs != 0 {
		t.Fatalf("%f allocations per step", allocs)
	}
}

func TestIntegrateInvalidStep(t *testing.T) {
	for _, h := range []float64{0, -0.1} {
		assertPanic(t, func() {
			Integrate(Reference, constant, 0, 1, h, 1.)
		})
	}
}

func TestStageUnrecognized(t *testing.T) {
	bad := Stage(5)
	assertPanic(t, func() { bad.Abscissa(0, 1) })
	assertPanic(t, func() { bad.Ordinate(0, 1, 1) })
	assertPanic(t, func() { _ = bad.String() })
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		var stageErr *UnrecognizedStageError
		if !errors.As(err, &stageErr) || stageErr.Stage != 0 {
			t.Fatalf("unexpected panic %v", err)
		}
	}()
	Stage(0).Abscissa(0, 1)
	t.Fatal("stage zero did not panic")
}

func TestTableau(t *testing.T) {
	var tab Tableau
	if tab != Reference {
		t.Fatal("zero value must be the reference tableau")
	}
	for name, exp := range map[string]Tableau{"": Reference, "reference": Reference, " Classical ": Classical, "textbook": Classical} {
		got, err := ParseTableau(name)
		if err != nil {
			t.Fatalf("`%s`: %s", name, err)
		}
		if got != exp {
			t.Fatalf("`%s`: got %s", name, got)
		}
	}
	if _, err := ParseTableau("euler"); err == nil {
		t.Fatal("euler is not an RK4 tableau")
	}
	if Classical.String() != "classical" || Reference.String() != "reference" {
		t.Fatal("incorrect tableau names")
	}
	assertPanic(t, func() { _ = Tableau(9).String() })
}
