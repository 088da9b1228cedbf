package main

import (
	"flag"
	"log"
	"math"

	"github.com/ChristopherRabotin/izhikevich"
)

// This code reads the scenario file, runs the neuron and optionally compares it to the coupled reference.

const defaultScenario = "~~unset~~"

var (
	scenario string
	duration float64
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "neuron scenario TOML file")
	flag.Float64Var(&duration, "duration", 0, "overrides the duration of the scenario (ms)")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scn, err := izhikevich.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("%s", err)
	}
	if duration > 0 {
		scn.Duration = duration
	}
	if verbose {
		log.Printf("[conf] %s", scn.Params)
		log.Printf("[conf] dt=%g ms tableau=%s duration=%g ms stimulus=%s", scn.Dt, scn.Tableau, scn.Duration, scn.Stimulus)
		if !scn.Export.IsUseless() {
			log.Printf("[conf] exporting to %s", scn.Export.Path())
		}
	}
	model, err := scn.Model()
	if err != nil {
		log.Fatalf("%s", err)
	}
	logger := izhikevich.NewLogger(scn.Export.Filename)
	sim := izhikevich.NewSimulation(model, scn.Stimulus, scn.Duration, scn.Export, logger)
	stats := sim.Run()

	if !scn.Coupled {
		return
	}
	refStim := scn.Stimulus
	if noise, ok := refStim.(*izhikevich.Noise); ok {
		refStim = noise.Restart()
	}
	ref, err := izhikevich.NewCoupledReference(scn.Params, scn.Dt, refStim)
	if err != nil {
		log.Fatalf("%s", err)
	}
	ref.PropagateFor(sim.Cycles)
	refStats := ref.Stats()
	logger.Log("level", "info", "subsys", "coupled", "stats", refStats, "Δspikes", refStats.Count-stats.Count, "Δv(mV)", math.Abs(ref.State().V-model.State().V))
}
