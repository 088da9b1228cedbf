package izhikevich

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChristopherRabotin/izhikevich/integrator"
	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable of an extra directory where scenarios are looked up.
const ConfigEnv = "IZH_CONFIG"

// Scenario is everything needed to run a simulation.
type Scenario struct {
	Params   Parameters
	Dt       float64 // ms
	Tableau  integrator.Tableau
	Duration float64 // ms
	Stimulus Stimulus
	Export   ExportConfig
	Coupled  bool // also run the coupled reference
}

// Model returns a new model for this scenario.
func (s Scenario) Model() (*Model, error) {
	return NewModel(s.Params, s.Dt, s.Tableau)
}

// NewScenarioViper returns a viper instance with the scenario defaults. Any key may be overridden.
func NewScenarioViper() *viper.Viper {
	v := viper.New()
	p := DefaultParameters()
	v.SetDefault("neuron.a", p.A)
	v.SetDefault("neuron.b", p.B)
	v.SetDefault("neuron.c", p.C)
	v.SetDefault("neuron.d", p.D)
	v.SetDefault("neuron.v0", p.V0)
	v.SetDefault("neuron.I", p.I)
	v.SetDefault("integrator.step", DefaultStep)
	v.SetDefault("integrator.tableau", integrator.Reference.String())
	v.SetDefault("simulation.duration", 1000.0)
	v.SetDefault("stimulus.type", "constant")
	v.SetDefault("stimulus.seed", 1)
	v.SetDefault("export.csv", false)
	v.SetDefault("export.directory", ".")
	return v
}

// LoadScenario reads the TOML scenario. A bare name (no extension) is looked up in the working
// directory and then in the directory of the IZH_CONFIG environment variable.
func LoadScenario(name string) (Scenario, error) {
	v := NewScenarioViper()
	if filepath.Ext(name) != "" {
		v.SetConfigFile(name)
	} else {
		v.SetConfigName(name)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir := os.Getenv(ConfigEnv); dir != "" {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("scenario `%s`: %w", name, err)
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if !v.IsSet("export.filename") {
		v.Set("export.filename", base)
	}
	return ScenarioFromViper(v)
}

// ScenarioFromViper builds a scenario from a viper instance (see NewScenarioViper for the keys).
func ScenarioFromViper(v *viper.Viper) (Scenario, error) {
	p := Parameters{
		A:  v.GetFloat64("neuron.a"),
		B:  v.GetFloat64("neuron.b"),
		C:  v.GetFloat64("neuron.c"),
		D:  v.GetFloat64("neuron.d"),
		V0: v.GetFloat64("neuron.v0"),
		I:  v.GetFloat64("neuron.I"),
	}
	if v.IsSet("neuron.u0") {
		p.U0 = v.GetFloat64("neuron.u0")
	} else {
		p.U0 = p.V0 * p.B
	}
	if err := p.validate(); err != nil {
		return Scenario{}, err
	}
	dt := v.GetFloat64("integrator.step")
	if err := validateStep(dt); err != nil {
		return Scenario{}, err
	}
	tab, err := integrator.ParseTableau(v.GetString("integrator.tableau"))
	if err != nil {
		return Scenario{}, err
	}
	stim, err := stimulusFromViper(v)
	if err != nil {
		return Scenario{}, err
	}
	s := Scenario{
		Params:   p,
		Dt:       dt,
		Tableau:  tab,
		Duration: v.GetFloat64("simulation.duration"),
		Stimulus: stim,
		Coupled:  v.GetBool("export.coupled"),
		Export: ExportConfig{
			Filename:  v.GetString("export.filename"),
			Directory: v.GetString("export.directory"),
			AsCSV:     v.GetBool("export.csv"),
			Timestamp: v.GetBool("export.timestamp"),
			Decimate:  v.GetUint("export.decimate"),
			Header:    fmt.Sprintf("%s dt=%g tableau=%s stimulus=%s", p, dt, tab, stim),
		},
	}
	return s, nil
}

func stimulusFromViper(v *viper.Viper) (Stimulus, error) {
	amplitude := v.GetFloat64("stimulus.amplitude")
	switch kind := strings.ToLower(v.GetString("stimulus.type")); kind {
	case "constant", "":
		return Constant(amplitude), nil
	case "pulse":
		start, end := v.GetFloat64("stimulus.start"), v.GetFloat64("stimulus.end")
		if end < start {
			return nil, fmt.Errorf("stimulus: pulse ends (%g) before it starts (%g)", end, start)
		}
		return Pulse{Start: start, End: end, Amplitude: amplitude}, nil
	case "noise":
		sigma := v.GetFloat64("stimulus.sigma")
		if sigma < 0 {
			return nil, fmt.Errorf("stimulus: negative noise sigma %g", sigma)
		}
		return NewNoise(Constant(amplitude), sigma, v.GetUint64("stimulus.seed")), nil
	default:
		return nil, fmt.Errorf("stimulus: unknown type `%s`", kind)
	}
}
