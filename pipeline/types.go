package pipeline

import "ramptest"

// Options configures the file-based analysis pipeline. Zero numeric
// protocol fields select the defaults of ramptest.DefaultPrepareOptions.
type Options struct {
	FitPath string
	OutDir  string

	StartMinutes    float64
	EndMinutes      float64
	SpeedMinKPH     float64
	SpeedStepKPH    float64
	TimeStepMinutes float64
	UseDeviceSpeed  bool

	AllData  bool
	TextSize float64
	Title    string

	Format    string // parquet|csv
	Overwrite bool
}

// BytesOptions configures the in-memory variant used by the web surface.
type BytesOptions struct {
	SourceFileName string
	FitData        []byte

	StartMinutes    float64
	EndMinutes      float64
	SpeedMinKPH     float64
	SpeedStepKPH    float64
	TimeStepMinutes float64
	UseDeviceSpeed  bool

	AllData  bool
	TextSize float64
	Title    string

	Format string // parquet|csv
}

// Result returns generated output paths plus the fitted threshold.
type Result struct {
	OutputDir        string              `json:"output_dir"`
	PlotPath         string              `json:"plot_path"`
	PreparedRowsPath string              `json:"prepared_rows_path"`
	StepPairsPath    string              `json:"step_pairs_path"`
	ThresholdPath    string              `json:"threshold_path"`
	SummaryPath      string              `json:"summary_path"`
	Threshold        *ramptest.Threshold `json:"threshold"`
}

// BytesResult holds every artifact in memory, keyed by file name.
type BytesResult struct {
	Files     map[string][]byte
	Threshold *ramptest.Threshold
}
