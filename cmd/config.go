package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/facility-sim/facility-sim/sim"
)

// DefaultTicks bounds a CLI run when nothing else says how long to go.
const DefaultTicks = 60

// Environment variables read from the process environment or the dotenv file.
const (
	EnvOperators   = "FACILITY_OPERATORS"
	EnvArrivalProb = "FACILITY_ARRIVAL_PROB"
	EnvTicks       = "FACILITY_TICKS"
	EnvCadence     = "FACILITY_CADENCE"
	EnvSeed        = "FACILITY_SEED"
	EnvTraceLevel  = "FACILITY_TRACE_LEVEL"
	EnvRealtime    = "FACILITY_REALTIME"
)

var envKeys = []string{EnvOperators, EnvArrivalProb, EnvTicks, EnvCadence, EnvSeed, EnvTraceLevel, EnvRealtime}

// FileConfig is the YAML configuration file. Absent fields keep their
// lower-precedence values, so every field is a pointer.
type FileConfig struct {
	Operators          *int     `yaml:"operators"`
	ArrivalProbability *float64 `yaml:"arrival_probability"`
	Ticks              *int     `yaml:"ticks"`
	Cadence            *string  `yaml:"cadence"`
	Seed               *int64   `yaml:"seed"`
	TraceLevel         *string  `yaml:"trace_level"`
	Realtime           *bool    `yaml:"realtime"`
	Display            *bool    `yaml:"display"`
}

// runOptions is the fully resolved configuration for one run.
type runOptions struct {
	Sim         sim.SimConfig
	Realtime    bool
	Display     bool
	ClearScreen bool
}

func defaultRunOptions() runOptions {
	cfg := sim.DefaultSimConfig()
	cfg.Ticks = DefaultTicks
	return runOptions{Sim: cfg, Display: true}
}

// loadConfigFile parses a YAML config file with strict field checking:
// typos must cause errors.
func loadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var fc FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(opts *runOptions) {
	if fc.Operators != nil {
		opts.Sim.Operators = *fc.Operators
	}
	if fc.ArrivalProbability != nil {
		opts.Sim.ArrivalProbability = *fc.ArrivalProbability
	}
	if fc.Ticks != nil {
		opts.Sim.Ticks = *fc.Ticks
	}
	if fc.Cadence != nil {
		opts.Sim.Cadence = *fc.Cadence
	}
	if fc.Seed != nil {
		opts.Sim.Seed = *fc.Seed
	}
	if fc.TraceLevel != nil {
		opts.Sim.TraceLevel = *fc.TraceLevel
	}
	if fc.Realtime != nil {
		opts.Realtime = *fc.Realtime
	}
	if fc.Display != nil {
		opts.Display = *fc.Display
	}
}

// loadEnv collects FACILITY_* values from the dotenv file (if present) and the
// process environment. Process variables win over the file.
func loadEnv(envFile string) (map[string]string, error) {
	env := make(map[string]string)
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			for _, k := range envKeys {
				if v, ok := fileEnv[k]; ok {
					env[k] = v
				}
			}
		case errors.Is(err, fs.ErrNotExist):
			logrus.Debugf("No env file at %s (using environment variables)", envFile)
		default:
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

func applyEnv(opts *runOptions, env map[string]string) error {
	for k, v := range env {
		var err error
		switch k {
		case EnvOperators:
			opts.Sim.Operators, err = strconv.Atoi(v)
		case EnvArrivalProb:
			opts.Sim.ArrivalProbability, err = strconv.ParseFloat(v, 64)
		case EnvTicks:
			opts.Sim.Ticks, err = strconv.Atoi(v)
		case EnvCadence:
			opts.Sim.Cadence = v
		case EnvSeed:
			opts.Sim.Seed, err = strconv.ParseInt(v, 10, 64)
		case EnvTraceLevel:
			opts.Sim.TraceLevel = v
		case EnvRealtime:
			opts.Realtime, err = strconv.ParseBool(v)
		}
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", k, v, err)
		}
	}
	return nil
}

// resolveRunOptions layers defaults, environment, config file and explicitly
// set flags, in increasing order of precedence.
func resolveRunOptions(cmd *cobra.Command, f *runFlags) (runOptions, error) {
	opts := defaultRunOptions()

	env, err := loadEnv(f.envFile)
	if err != nil {
		return opts, err
	}
	if err := applyEnv(&opts, env); err != nil {
		return opts, err
	}

	if f.configPath != "" {
		fc, err := loadConfigFile(f.configPath)
		if err != nil {
			return opts, err
		}
		fc.apply(&opts)
		logrus.Infof("Loaded configuration from %s", f.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("operators") {
		opts.Sim.Operators = f.operators
	}
	if flags.Changed("arrival-prob") {
		opts.Sim.ArrivalProbability = f.arrivalProb
	}
	if flags.Changed("ticks") {
		opts.Sim.Ticks = f.ticks
	}
	if flags.Changed("cadence") {
		opts.Sim.Cadence = f.cadence
	}
	if flags.Changed("seed") {
		opts.Sim.Seed = f.seed
	}
	if flags.Changed("trace-level") {
		opts.Sim.TraceLevel = f.traceLevel
	}
	if flags.Changed("realtime") {
		opts.Realtime = f.realtime
	}
	if flags.Changed("display") {
		opts.Display = f.display
	}
	opts.ClearScreen = f.clearScreen

	if err := opts.Sim.Validate(); err != nil {
		return opts, fmt.Errorf("invalid configuration: %w", err)
	}
	return opts, nil
}
