package izhikevich

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Stimulus is the external input current sampled by the host once per cycle.
type Stimulus interface {
	Current(t float64) float64
	String() string
}

// Constant is a constant input current.
type Constant float64

// Current implements the Stimulus interface.
func (c Constant) Current(t float64) float64 {
	return float64(c)
}

func (c Constant) String() string {
	return fmt.Sprintf("constant(%g)", float64(c))
}

// Pulse is a square current pulse of Amplitude over [Start, End).
type Pulse struct {
	Start, End float64 // ms
	Amplitude  float64
}

// Current implements the Stimulus interface.
func (p Pulse) Current(t float64) float64 {
	if t >= p.Start && t < p.End {
		return p.Amplitude
	}
	return 0
}

func (p Pulse) String() string {
	return fmt.Sprintf("pulse(%g from %g to %g)", p.Amplitude, p.Start, p.End)
}

// Noise adds zero-mean Gaussian noise on top of another stimulus.
type Noise struct {
	Base  Stimulus
	Sigma float64
	Seed  uint64
	dist  distuv.Normal
}

// NewNoise returns a Noise stimulus. The same seed gives the same sequence of samples.
func NewNoise(base Stimulus, sigma float64, seed uint64) *Noise {
	if base == nil {
		base = Constant(0)
	}
	return &Noise{Base: base, Sigma: sigma, Seed: seed, dist: distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewSource(seed)}}
}

// Restart returns a new Noise which replays the sequence of samples from the start.
func (n *Noise) Restart() *Noise {
	return NewNoise(n.Base, n.Sigma, n.Seed)
}

// Current implements the Stimulus interface. Each call draws a new sample.
func (n *Noise) Current(t float64) float64 {
	if n.Sigma == 0 {
		return n.Base.Current(t)
	}
	return n.Base.Current(t) + n.dist.Rand()
}

func (n *Noise) String() string {
	return fmt.Sprintf("%s+noise(σ=%g)", n.Base, n.Sigma)
}
