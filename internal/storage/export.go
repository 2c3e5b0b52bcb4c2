package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/san-kum/pendulum/internal/trace"
)

type ExportData struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Frames    int                `json:"frames"`
	Pendulums int                `json:"pendulums"`
	Series    [][]ExportPoint    `json:"series"`
	Metrics   map[string]float64 `json:"metrics"`
}

type ExportPoint struct {
	Frame  int     `json:"frame"`
	Angle  float64 `json:"angle"`
	Omega  float64 `json:"omega"`
	Alpha  float64 `json:"alpha"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Energy float64 `json:"energy"`
}

// ExportJSON writes a run grouped per pendulum.
func ExportJSON(w io.Writer, meta *RunMetadata, result *trace.Result) error {
	data := ExportData{
		ID:        meta.ID,
		Preset:    meta.Preset,
		Frames:    result.Frames,
		Pendulums: result.Pendulums,
		Series:    make([][]ExportPoint, result.Pendulums),
		Metrics:   result.Metrics,
	}

	for i := range data.Series {
		series := result.Series(i)
		data.Series[i] = make([]ExportPoint, len(series))
		for j, s := range series {
			data.Series[i][j] = ExportPoint{
				Frame:  s.Frame,
				Angle:  s.Angle,
				Omega:  s.AngularVelocity,
				Alpha:  s.AngularAcceleration,
				X:      s.Position.X,
				Y:      s.Position.Y,
				Energy: s.Energy,
			}
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes samples in the same layout the store keeps on disk.
func ExportCSV(w io.Writer, result *trace.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sampleHeader); err != nil {
		return err
	}
	for _, s := range result.Samples {
		if err := cw.Write(sampleRow(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
