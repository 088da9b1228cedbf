package izhikevich

import (
	"os"
	"sync"

	kitlog "github.com/go-kit/kit/log"
)

// Simulation plays the part of the real-time host: once per cycle it samples the stimulus,
// steps the model and records the output.
type Simulation struct {
	Model    *Model   // As pointer because the state changes during the simulation.
	Stimulus Stimulus // nil means no synaptic input
	Duration float64  // ms
	CurrentT float64  // ms
	Cycles   uint64
	Spikes   []float64 // spike times (ms)
	stopChan chan bool
	histChan chan Sample
	conf     ExportConfig
	logger   kitlog.Logger
	wg       sync.WaitGroup
}

// NewLogger returns the logfmt logger used by the simulations, writing to stdout.
func NewLogger(name string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return kitlog.With(klog, "neuron", name)
}

// NewSimulation returns a new Simulation of the model over duration (ms).
// If the export config is useless, nothing is written. A nil logger discards all logs.
func NewSimulation(m *Model, stim Stimulus, duration float64, conf ExportConfig, logger kitlog.Logger) *Simulation {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	s := &Simulation{Model: m, Stimulus: stim, Duration: duration, stopChan: make(chan bool, 1), conf: conf, logger: logger}
	if duration <= 0 {
		s.logger.Log("level", "warning", "subsys", "sim", "message", "no duration")
	}
	return s
}

// LogStatus logs the status of the simulation.
func (s *Simulation) LogStatus() {
	s.logger.Log("level", "info", "subsys", "sim", "t(ms)", s.CurrentT, "cycles", s.Cycles, "spikes", len(s.Spikes), "state", s.Model.State())
}

// StopSimulation is used to stop the simulation before it is completed. It may be called from another goroutine.
func (s *Simulation) StopSimulation() {
	select {
	case s.stopChan <- true:
	default: // a stop is already pending
	}
}

// stop returns whether the simulation should stop before the cycle starting at CurrentT.
func (s *Simulation) stop() bool {
	select {
	case <-s.stopChan:
		s.logger.Log("level", "notice", "subsys", "sim", "status", "stopped", "t(ms)", s.CurrentT)
		return true
	default:
		return s.CurrentT >= s.Duration
	}
}

// Run runs the simulation until the duration is reached or StopSimulation is called, and returns
// the statistics of the spike train. Run does not return before all the samples are written.
func (s *Simulation) Run() SpikeStats {
	if !s.conf.IsUseless() {
		s.histChan = make(chan Sample, 1000) // a 1k entry buffer
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			StreamSamples(s.conf, s.logger, s.histChan)
		}()
	}
	s.logger.Log("level", "info", "subsys", "sim", "params", s.Model.Parameters(), "dt(ms)", s.Model.Dt(), "tableau", s.Model.Tableau(), "stimulus", s.stimulusName())
	startT := s.CurrentT
	for !s.stop() {
		s.cycle()
	}
	if s.histChan != nil {
		close(s.histChan)
		s.histChan = nil
	}
	stats := NewSpikeStats(s.Spikes, s.CurrentT-startT)
	s.logger.Log("level", "notice", "subsys", "sim", "status", "finished", "stats", stats)
	s.LogStatus()
	s.wg.Wait() // Don't return until we're done writing the file.
	return stats
}

// cycle runs one cycle of the host loop.
func (s *Simulation) cycle() {
	t := s.CurrentT
	var isyn float64
	if s.Stimulus != nil {
		isyn = s.Stimulus.Current(t)
	}
	spiked := s.Model.State().Spiking()
	s.Model.Step(t, isyn)
	if spiked {
		s.Spikes = append(s.Spikes, t)
	}
	if s.histChan != nil {
		st := s.Model.State()
		s.histChan <- Sample{T: t, V: st.V, U: st.U, Isyn: isyn, Spiked: spiked}
	}
	s.Cycles++
	s.CurrentT += s.Model.Dt()
}

func (s *Simulation) stimulusName() string {
	if s.Stimulus == nil {
		return "none"
	}
	return s.Stimulus.String()
}
