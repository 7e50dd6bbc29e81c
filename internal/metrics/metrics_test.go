package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLayoutCounters(t *testing.T) {
	before := testutil.ToFloat64(LayoutStepsTotal)
	LayoutStepsTotal.Inc()
	if got := testutil.ToFloat64(LayoutStepsTotal); got != before+1 {
		t.Errorf("layout_steps_total = %f, want %f", got, before+1)
	}

	runs := LayoutRunsTotal.WithLabelValues("success")
	before = testutil.ToFloat64(runs)
	runs.Inc()
	if got := testutil.ToFloat64(runs); got != before+1 {
		t.Errorf("layout_runs_total{status=success} = %f, want %f", got, before+1)
	}
}

func TestQuadtreeGauges(t *testing.T) {
	QuadtreeNodes.Set(17)
	QuadtreeDepth.Set(4)
	if testutil.ToFloat64(QuadtreeNodes) != 17 || testutil.ToFloat64(QuadtreeDepth) != 4 {
		t.Error("quadtree gauges not updated")
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "textfile_sample_total", Help: "sample"})
	reg.MustRegister(c)
	c.Add(3)

	path := filepath.Join(t.TempDir(), "layout.prom")
	if err := writeTextfile(path, reg); err != nil {
		t.Fatalf("writeTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "textfile_sample_total 3") {
		t.Errorf("textfile missing metric, got:\n%s", data)
	}
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	if err := WriteTextfile(""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}
