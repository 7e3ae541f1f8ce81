// Package pipeline orchestrates one full analysis pass: decode the FIT
// file, prepare and aggregate the samples, fit the threshold, render the
// plot, and write every artifact.
package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ramptest"
	"ramptest/fitload"
	"ramptest/render"
)

// Run executes the pipeline against a FIT file on disk and writes all
// artifacts into OutDir.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.FitPath) == "" {
		return nil, fmt.Errorf("fit path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	samples, err := fitload.ReadFile(opts.FitPath)
	if err != nil {
		return nil, err
	}

	files, th, err := buildArtifacts(samples, analysisParams{
		StartMinutes:    opts.StartMinutes,
		EndMinutes:      opts.EndMinutes,
		SpeedMinKPH:     opts.SpeedMinKPH,
		SpeedStepKPH:    opts.SpeedStepKPH,
		TimeStepMinutes: opts.TimeStepMinutes,
		UseDeviceSpeed:  opts.UseDeviceSpeed,
		AllData:         opts.AllData,
		TextSize:        opts.TextSize,
		Title:           opts.Title,
	}, format)
	if err != nil {
		return nil, err
	}

	if err := ensureOutDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}
	result := &Result{OutputDir: opts.OutDir, Threshold: th}
	for name, data := range files {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		switch name {
		case "plot.png":
			result.PlotPath = path
		case "step_pairs.json":
			result.StepPairsPath = path
		case "threshold.json":
			result.ThresholdPath = path
		case "summary.md":
			result.SummaryPath = path
		default:
			result.PreparedRowsPath = path
		}
	}
	return result, nil
}

// RunBytes executes the pipeline against in-memory FIT data and returns
// every artifact in memory. Used by the web surface, which owns no
// filesystem state per request.
func RunBytes(opts BytesOptions) (*BytesResult, error) {
	if len(opts.FitData) == 0 {
		return nil, fmt.Errorf("fit data is required")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	samples, err := fitload.ReadBytes(opts.FitData)
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = opts.SourceFileName
	}

	files, th, err := buildArtifacts(samples, analysisParams{
		StartMinutes:    opts.StartMinutes,
		EndMinutes:      opts.EndMinutes,
		SpeedMinKPH:     opts.SpeedMinKPH,
		SpeedStepKPH:    opts.SpeedStepKPH,
		TimeStepMinutes: opts.TimeStepMinutes,
		UseDeviceSpeed:  opts.UseDeviceSpeed,
		AllData:         opts.AllData,
		TextSize:        opts.TextSize,
		Title:           title,
	}, format)
	if err != nil {
		return nil, err
	}
	return &BytesResult{Files: files, Threshold: th}, nil
}

type analysisParams struct {
	StartMinutes    float64
	EndMinutes      float64
	SpeedMinKPH     float64
	SpeedStepKPH    float64
	TimeStepMinutes float64
	UseDeviceSpeed  bool
	AllData         bool
	TextSize        float64
	Title           string
}

// prepareOptions fills zero protocol fields from the library defaults so
// callers can set only what they changed.
func (p analysisParams) prepareOptions() ramptest.PrepareOptions {
	o := ramptest.DefaultPrepareOptions()
	o.StartMinutes = p.StartMinutes
	if p.EndMinutes > 0 {
		o.EndMinutes = p.EndMinutes
	}
	if p.SpeedMinKPH > 0 {
		o.SpeedMinKPH = p.SpeedMinKPH
	}
	if p.SpeedStepKPH > 0 {
		o.SpeedStepKPH = p.SpeedStepKPH
	}
	if p.TimeStepMinutes > 0 {
		o.TimeStepMinutes = p.TimeStepMinutes
	}
	o.UseDeviceSpeed = p.UseDeviceSpeed
	return o
}

func buildArtifacts(samples []fitload.Sample, params analysisParams, format string) (map[string][]byte, *ramptest.Threshold, error) {
	prepared, err := ramptest.Prepare(samples, params.prepareOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("prepare samples: %w", err)
	}

	pairs := ramptest.Aggregate(prepared.Rows, params.AllData)

	th, err := ramptest.FitThreshold(pairs, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("fit threshold: %w", err)
	}

	plot, err := render.Plot(pairs, th, render.Options{
		TextSize: params.TextSize,
		Title:    params.Title,
	})
	if err != nil {
		return nil, nil, err
	}

	files := make(map[string][]byte, 5)
	files["plot.png"] = plot

	switch format {
	case "csv":
		data, err := marshalPreparedCSV(prepared.Rows)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal prepared csv: %w", err)
		}
		files["prepared_rows.csv"] = data
	case "parquet":
		data, err := marshalPreparedParquet(prepared.Rows)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal prepared parquet: %w", err)
		}
		files["prepared_rows.parquet"] = data
	}

	pairsJSON, err := marshalJSON(pairs)
	if err != nil {
		return nil, nil, err
	}
	files["step_pairs.json"] = pairsJSON

	thJSON, err := marshalJSON(th)
	if err != nil {
		return nil, nil, err
	}
	files["threshold.json"] = thJSON

	files["summary.md"] = []byte(ramptest.BuildTestSummary(prepared.Rows, pairs, th) + "\n")

	return files, th, nil
}

func normalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = "parquet"
	}
	if f != "parquet" && f != "csv" {
		return "", fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}
	return f, nil
}

func ensureOutDir(dir string, overwrite bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if overwrite {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty (use overwrite)", dir)
	}
	return nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalPreparedCSV(rows []ramptest.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"minutes", "heart_rate_bpm", "speed_kph"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			formatFloat(r.Minutes),
			formatFloat(r.HeartRate),
			formatFloat(r.SpeedKPH),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
