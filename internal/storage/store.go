package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/pendulum/internal/config"
	"github.com/san-kum/pendulum/internal/physics"
	"github.com/san-kum/pendulum/internal/trace"
	"github.com/san-kum/pendulum/internal/vec"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var sampleHeader = []string{"frame", "pendulum", "angle", "omega", "alpha", "x", "y", "energy"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string                  `json:"id"`
	Preset    string                  `json:"preset"`
	Timestamp time.Time               `json:"timestamp"`
	Frames    int                     `json:"frames"`
	Pendulums []config.PendulumConfig `json:"pendulums"`
	Metrics   map[string]float64      `json:"metrics"`
}

func newRunID(preset string) string {
	return fmt.Sprintf("%s_%s", preset, uuid.NewString()[:8])
}

func (s *Store) Save(preset string, pendulums []config.PendulumConfig, result *trace.Result) (string, error) {
	runID := newRunID(preset)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		Frames:    result.Frames,
		Pendulums: pendulums,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, smp := range result.Samples {
		if err := w.Write(sampleRow(smp)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func sampleRow(s trace.Sample) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return []string{
		strconv.Itoa(s.Frame),
		strconv.Itoa(s.Pendulum),
		f(s.Angle),
		f(s.AngularVelocity),
		f(s.AngularAcceleration),
		f(s.Position.X),
		f(s.Position.Y),
		f(s.Energy),
	}
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadResult reads a run back into a trace.Result.
func (s *Store) LoadResult(runID string) (*trace.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &trace.Result{
		Frames:    meta.Frames,
		Pendulums: len(meta.Pendulums),
		Metrics:   meta.Metrics,
		Samples:   make([]trace.Sample, 0, len(records)),
	}

	for i, record := range records {
		if i == 0 {
			continue
		}
		smp, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", samplesFile, i+1, err)
		}
		result.Samples = append(result.Samples, smp)
	}

	return result, nil
}

func parseSample(record []string) (trace.Sample, error) {
	frame, err := strconv.Atoi(record[0])
	if err != nil {
		return trace.Sample{}, err
	}
	idx, err := strconv.Atoi(record[1])
	if err != nil {
		return trace.Sample{}, err
	}

	vals := make([]float64, 6)
	for j := range vals {
		vals[j], err = strconv.ParseFloat(record[j+2], 64)
		if err != nil {
			return trace.Sample{}, err
		}
	}

	return trace.Sample{
		Frame:    frame,
		Pendulum: idx,
		Sample: physics.Sample{
			Angle:               vals[0],
			AngularVelocity:     vals[1],
			AngularAcceleration: vals[2],
			Position:            vec.New(vals[3], vals[4]),
			Energy:              vals[5],
		},
	}, nil
}
