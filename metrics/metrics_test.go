package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	FetchDuration.WithLabelValues("catalog").Observe(1.5)
	FetchFailures.WithLabelValues("overpass", "transport").Inc()
	RowsWritten.WithLabelValues("satelital").Add(42)

	path := filepath.Join(t.TempDir(), "neolumina.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected the textfile to exist: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "acquisition_fetch_duration_seconds") {
		t.Error("Expected the duration histogram in the textfile")
	}
	if !strings.Contains(content, `acquisition_fetch_failures_total{kind="transport",source="overpass"} 1`) {
		t.Errorf("Expected the failure counter in the textfile, got:\n%s", content)
	}
	if !strings.Contains(content, `acquisition_rows_written_total{theme="satelital"} 42`) {
		t.Errorf("Expected the rows counter in the textfile, got:\n%s", content)
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "sub", "dir.prom"))
	if err == nil {
		t.Error("Expected an error for an unwritable path")
	}
}
