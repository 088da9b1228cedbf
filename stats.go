package izhikevich

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SpikeStats summarizes a spike train.
type SpikeStats struct {
	Count    int
	Duration float64 // ms
	Rate     float64 // Hz
	MeanISI  float64 // ms, NaN with fewer than two spikes
	CVISI    float64 // coefficient of variation of the ISIs, NaN with fewer than three spikes
}

// NewSpikeStats computes the statistics of the spike times (ms, ascending) over duration (ms).
func NewSpikeStats(spikes []float64, duration float64) SpikeStats {
	s := SpikeStats{Count: len(spikes), Duration: duration, MeanISI: math.NaN(), CVISI: math.NaN()}
	if duration > 0 {
		s.Rate = float64(len(spikes)) / (duration / 1000)
	}
	if len(spikes) < 2 {
		return s
	}
	isi := make([]float64, len(spikes)-1)
	floats.SubTo(isi, spikes[1:], spikes[:len(spikes)-1])
	if len(isi) == 1 {
		s.MeanISI = isi[0]
		return s
	}
	mean, std := stat.MeanStdDev(isi, nil)
	s.MeanISI = mean
	if mean != 0 {
		s.CVISI = std / mean
	}
	return s
}

func (s SpikeStats) String() string {
	return fmt.Sprintf("%d spikes in %.1f ms (%.2f Hz, ISI %.3f ms, CV %.3f)", s.Count, s.Duration, s.Rate, s.MeanISI, s.CVISI)
}
