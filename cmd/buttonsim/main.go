// Command buttonsim runs a Button module over a scripted input sequence and
// prints how its outputs respond.
//
// Usage:
//
//	buttonsim [flags] scenario.yaml
//	buttonsim [flags] performance.mid
//
// YAML scenarios carry their own sample rate. MIDI files are rendered at
// -rate (or BUTTONSIM_SAMPLE_RATE); every held note presses the button, or
// with -velocity-cv drives the trigger input instead.
//
// Examples:
//
//	buttonsim presses.yaml
//	buttonsim -csv presses.yaml > frames.csv
//	buttonsim -state patch.json -load-state patch.json clock.mid
//
// Environment:
//
//	BUTTONSIM_SAMPLE_RATE  sample rate for MIDI input (default 48000)
//	BUTTONSIM_BLOCK_SIZE   frames between cancellation checks (default 256)
//	BUTTONSIM_LOG_LEVEL    debug, info, warn or error (default info)
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-button/dsp/core"
	"github.com/cwbudde/algo-button/internal/config"
	"github.com/cwbudde/algo-button/internal/host"
	"github.com/cwbudde/algo-button/internal/scenario"
	"github.com/cwbudde/algo-button/module/button"
)

type envConfig struct {
	SampleRate float64 `env:"BUTTONSIM_SAMPLE_RATE" envDefault:"48000"`
	BlockSize  int     `env:"BUTTONSIM_BLOCK_SIZE" envDefault:"256"`
	LogLevel   string  `env:"BUTTONSIM_LOG_LEVEL" envDefault:"info"`
}

type options struct {
	path       string
	sampleRate float64
	blockSize  int
	velocityCV bool
	csv        bool
	loadState  string
	saveState  string
}

var outputNames = [button.NumOutputs]string{
	button.TriggerOutput: "trigger",
	button.GateOutput:    "gate",
	button.ToggleOutput:  "toggle",
	button.ConstOutput:   "const",
}

func main() {
	var cfg envConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("error: %v", err)
	}

	rate := flag.Float64("rate", cfg.SampleRate, "sample rate for MIDI input in Hz")
	velocityCV := flag.Bool("velocity-cv", false, "MIDI notes drive the trigger input by velocity instead of pressing the button")
	csvOut := flag.Bool("csv", false, "write every frame as CSV instead of the transition table")
	loadState := flag.String("load-state", "", "restore module state from this JSON file before running")
	saveState := flag.String("state", "", "write the final module state as JSON to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: buttonsim [flags] scenario.yaml|file.mid\n\n")
		fmt.Fprintf(os.Stderr, "Runs a Button module over a scripted input sequence.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := options{
		path:       flag.Arg(0),
		sampleRate: *rate,
		blockSize:  cfg.BlockSize,
		velocityCV: *velocityCV,
		csv:        *csvOut,
		loadState:  *loadState,
		saveState:  *saveState,
	}
	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		config.Exitf("error: %v", err)
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func run(ctx context.Context, opts options, stdout io.Writer, logger *slog.Logger) error {
	sc, err := loadScenario(opts)
	if err != nil {
		return err
	}
	logger.Info("scenario loaded",
		"path", opts.path,
		"sample_rate", sc.SampleRate,
		"events", len(sc.Events),
		"frames", sc.Frames())

	press, cv, err := sc.Render()
	if err != nil {
		return err
	}

	mod := button.Model.New()
	if sc.State != nil {
		data, err := sc.State.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode scenario state: %w", err)
		}
		mod.UnmarshalState(data)
	}
	if opts.loadState != "" {
		data, err := os.ReadFile(opts.loadState)
		if err != nil {
			return fmt.Errorf("read state: %w", err)
		}
		mod.UnmarshalState(data)
		logger.Debug("state restored", "path", opts.loadState, "state", string(data))
	}

	runner := host.NewRunner(mod,
		core.WithSampleRate(sc.SampleRate),
		core.WithBlockSize(opts.blockSize),
	)
	tr, err := runner.Drive(ctx, host.Streams{
		Params: [][]float64{button.ButtonParam: press},
		Inputs: [][]float64{button.TriggerInput: cv},
	})
	if err != nil {
		return fmt.Errorf("drive module: %w", err)
	}
	logger.Info("run complete", "frames", runner.Frame())

	if opts.csv {
		err = writeCSV(stdout, tr, press, cv)
	} else {
		err = writeTransitions(stdout, tr)
	}
	if err != nil {
		return err
	}

	if opts.saveState != "" {
		data, err := mod.MarshalState()
		if err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		if err := os.WriteFile(opts.saveState, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write state: %w", err)
		}
		logger.Debug("state saved", "path", opts.saveState, "state", string(data))
	}

	return nil
}

func loadScenario(opts options) (*scenario.Scenario, error) {
	f, err := os.Open(opts.path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(opts.path)) {
	case ".mid", ".midi", ".smf":
		return scenario.FromMIDI(f, opts.sampleRate, opts.velocityCV)
	default:
		return scenario.Load(f)
	}
}

func writeTransitions(w io.Writer, tr host.Trace) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Time [ms]\tFrame\tOutput\tValue [V]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "---------\t-----\t------\t---------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for id, name := range outputNames {
		for _, t := range tr.Transitions(id) {
			ms := 1000 * float64(t.Frame) / tr.SampleRate
			if _, err := fmt.Fprintf(tw, "%.3f\t%d\t%s\t%g\n", ms, t.Frame, name, t.Value); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, tr host.Trace, press, cv []float64) error {
	cw := csv.NewWriter(w)
	header := []string{"frame", "time", "press", "cv"}
	header = append(header, outputNames[:]...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	row := make([]string, len(header))
	for i := 0; i < tr.Len(); i++ {
		row[0] = strconv.Itoa(i)
		row[1] = strconv.FormatFloat(float64(i)/tr.SampleRate, 'f', 6, 64)
		row[2] = strconv.FormatFloat(press[i], 'g', -1, 64)
		row[3] = strconv.FormatFloat(cv[i], 'g', -1, 64)
		for o := range outputNames {
			row[4+o] = strconv.FormatFloat(tr.Outputs[o][i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
