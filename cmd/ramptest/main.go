package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ramptest/pipeline"
)

func main() {
	var (
		fitPath     = flag.String("fit", "", "Path to input .fit file")
		outDir      = flag.String("out", "", "Output directory")
		start       = flag.Float64("start", 0, "Trim window start in minutes")
		end         = flag.Float64("end", 1000, "Trim window end in minutes")
		speedMin    = flag.Float64("speed-min", 6, "Protocol start speed in km/h")
		speedStep   = flag.Float64("speed-step", 1, "Protocol speed increment in km/h")
		timeStep    = flag.Float64("time-step", 1.5, "Protocol step duration in minutes")
		deviceSpeed = flag.Bool("device-speed", false, "Use device-reported speed instead of the step protocol")
		allData     = flag.Bool("all-data", false, "Fit on every sample instead of per-step averages")
		textSize    = flag.Float64("text-size", 5, "Annotation text size (1-10)")
		title       = flag.String("title", "", "Plot title")
		format      = flag.String("format", "parquet", "Prepared rows format: parquet|csv")
		overwrite   = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --fit input.fit --out outdir [--start 0] [--end 1000] [--device-speed] [--all-data]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*fitPath) == "" || strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	result, err := pipeline.Run(pipeline.Options{
		FitPath:         *fitPath,
		OutDir:          *outDir,
		StartMinutes:    *start,
		EndMinutes:      *end,
		SpeedMinKPH:     *speedMin,
		SpeedStepKPH:    *speedStep,
		TimeStepMinutes: *timeStep,
		UseDeviceSpeed:  *deviceSpeed,
		AllData:         *allData,
		TextSize:        *textSize,
		Title:           *title,
		Format:          *format,
		Overwrite:       *overwrite,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ramptest failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ramptest complete\n")
	fmt.Printf("Output dir:     %s\n", result.OutputDir)
	fmt.Printf("plot:           %s\n", result.PlotPath)
	fmt.Printf("prepared rows:  %s\n", result.PreparedRowsPath)
	fmt.Printf("step pairs:     %s\n", result.StepPairsPath)
	fmt.Printf("threshold:      %s\n", result.ThresholdPath)
	fmt.Printf("summary:        %s\n", result.SummaryPath)
	if th := result.Threshold; th != nil {
		fmt.Printf("%s | %s | %s\n", th.Labels.Speed, th.Labels.Pace, th.Labels.HeartRate)
	}
}
