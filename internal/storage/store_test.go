package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/pendulum/internal/config"
	"github.com/san-kum/pendulum/internal/scene"
	"github.com/san-kum/pendulum/internal/trace"
)

func record(t *testing.T, frames int) (*config.Config, *trace.Result) {
	t.Helper()
	cfg := config.DefaultConfig()
	result, err := trace.Record(context.Background(), scene.FromConfig(cfg), frames)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	return cfg, result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, result := record(t, 20)

	runID, err := st.Save("classic", cfg.Pendulums, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "classic_") || len(runID) != len("classic_")+8 {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "classic" || meta.Frames != 20 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if len(meta.Pendulums) != 2 {
		t.Errorf("expected 2 pendulums in metadata, got %d", len(meta.Pendulums))
	}
	if meta.Metrics["frames"] != 20 {
		t.Errorf("expected frames metric 20, got %f", meta.Metrics["frames"])
	}

	loaded, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result failed: %v", err)
	}
	if len(loaded.Samples) != len(result.Samples) {
		t.Fatalf("expected %d samples, got %d", len(result.Samples), len(loaded.Samples))
	}
	for i := range result.Samples {
		if loaded.Samples[i] != result.Samples[i] {
			t.Fatalf("sample %d differs: %+v vs %+v", i, loaded.Samples[i], result.Samples[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, result := record(t, 5)
	for i := 0; i < 3; i++ {
		if _, err := st.Save("classic", cfg.Pendulums, result); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadResult("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	_, result := record(t, 10)
	meta := &RunMetadata{ID: "classic_abcd1234", Preset: "classic"}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, result); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(data.Series) != 2 || len(data.Series[0]) != 10 {
		t.Errorf("unexpected series shape: %d", len(data.Series))
	}
	if data.Series[1][0].Frame != 1 {
		t.Errorf("expected first frame 1, got %d", data.Series[1][0].Frame)
	}
}

func TestExportCSV(t *testing.T) {
	_, result := record(t, 3)

	var buf bytes.Buffer
	if err := ExportCSV(&buf, result); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header plus 6 rows, got %d lines", len(lines))
	}
	if lines[0] != "frame,pendulum,angle,omega,alpha,x,y,energy" {
		t.Errorf("unexpected header %q", lines[0])
	}
}
