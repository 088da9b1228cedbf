package izhikevich

import (
	"bytes"
	"strings"
	"testing"
)

func TestSampleCSV(t *testing.T) {
	s := Sample{T: 1.5, V: -65, U: -13, Isyn: 2, Spiked: true}
	if csv := s.ToCSV(); csv != "1.5000,-65.000000,-13.000000,2.000000,1" {
		t.Fatalf("incorrect CSV row `%s`", csv)
	}
}

func TestWriteSamples(t *testing.T) {
	samples := make(chan Sample, 10)
	for i := 0; i < 10; i++ {
		samples <- Sample{T: float64(i), V: -60, U: -12, Spiked: i == 3}
	}
	close(samples)
	var buf bytes.Buffer
	n, err := WriteSamples(&buf, ExportConfig{Decimate: 4, Header: "unit test"}, samples)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("reported %d bytes, wrote %d", n, buf.Len())
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[0], "# Creation date") || lines[1] != "# unit test" || lines[2] != "t,v,u,isyn,spike" {
		t.Fatalf("incorrect header:\n%s", buf.String())
	}
	// Samples 0, 4 and 8, plus the spike at 3.
	rows := lines[3:]
	exp := []string{"0.0000", "3.0000", "4.0000", "8.0000"}
	if len(rows) != len(exp) {
		t.Fatalf("expected %d rows, got %d:\n%s", len(exp), len(rows), buf.String())
	}
	for i, row := range rows {
		if !strings.HasPrefix(row, exp[i]+",") {
			t.Fatalf("row %d is `%s`", i, row)
		}
	}
}

func TestExportConfig(t *testing.T) {
	if !(ExportConfig{}).IsUseless() {
		t.Fatal("an empty config exports nothing")
	}
	conf := ExportConfig{Filename: "rs", Directory: "/tmp/out", AsCSV: true}
	if conf.IsUseless() {
		t.Fatal("CSV export is not useless")
	}
	if conf.Path() != "/tmp/out/trace-rs.csv" {
		t.Fatalf("incorrect path %s", conf.Path())
	}
	conf.Timestamp = true
	if p := conf.Path(); !strings.HasPrefix(p, "/tmp/out/trace-rs-") || !strings.HasSuffix(p, ".csv") {
		t.Fatalf("incorrect timestamped path %s", p)
	}
}
