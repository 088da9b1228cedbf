package izhikevich

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/c2h5oh/datasize"
	kitlog "github.com/go-kit/kit/log"
)

// Sample is what the host records for one cycle.
type Sample struct {
	T      float64 // time at the start of the cycle (ms)
	V, U   float64 // state after the cycle
	Isyn   float64 // input sample used for the cycle
	Spiked bool    // the cycle was a reset
}

// ToCSV returns the CSV row of this sample (without a trailing newline).
func (s Sample) ToCSV() string {
	spike := 0
	if s.Spiked {
		spike = 1
	}
	return fmt.Sprintf("%.4f,%.6f,%.6f,%.6f,%d", s.T, s.V, s.U, s.Isyn, spike)
}

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Filename  string
	Directory string
	AsCSV     bool
	Timestamp bool
	Decimate  uint // only write one sample out of Decimate (spikes are always written); 0 and 1 write all
	Header    string
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV
}

// Path returns the path of the CSV file.
func (c ExportConfig) Path() string {
	dir := c.Directory
	if dir == "" {
		dir = "."
	}
	name := c.Filename
	if c.Timestamp {
		name += "-" + time.Now().UTC().Format("2006-01-02-15.04.05")
	}
	return filepath.Join(dir, fmt.Sprintf("trace-%s.csv", name))
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteSamples writes the header and all the samples from the channel until it is closed.
// It returns the number of bytes written. On a write error, the channel is still drained so that
// the producer never blocks.
func WriteSamples(w io.Writer, conf ExportConfig, samples <-chan Sample) (int64, error) {
	cw := &countingWriter{w: w}
	buf := bufio.NewWriter(cw)
	var werr error
	write := func(s string) {
		if werr == nil {
			_, werr = buf.WriteString(s)
		}
	}
	write(fmt.Sprintf("# Creation date (UTC): %s\n", time.Now().UTC()))
	if conf.Header != "" {
		write(fmt.Sprintf("# %s\n", conf.Header))
	}
	write("t,v,u,isyn,spike\n")
	every := conf.Decimate
	if every == 0 {
		every = 1
	}
	var sampleNo uint
	for s := range samples {
		if s.Spiked || sampleNo%every == 0 {
			write(s.ToCSV() + "\n")
		}
		sampleNo++
	}
	if werr == nil {
		werr = buf.Flush()
	}
	return cw.n, werr
}

// StreamSamples streams the samples of the channel to the configured file.
func StreamSamples(conf ExportConfig, logger kitlog.Logger, samples <-chan Sample) {
	path := conf.Path()
	f, err := os.Create(path)
	if err != nil {
		logger.Log("level", "critical", "subsys", "export", "file", path, "err", err)
		for range samples {
		}
		return
	}
	defer f.Close()
	n, err := WriteSamples(f, conf, samples)
	if err != nil {
		logger.Log("level", "critical", "subsys", "export", "file", path, "err", err)
		return
	}
	logger.Log("level", "info", "subsys", "export", "file", path, "size", datasize.ByteSize(n).HumanReadable())
}
