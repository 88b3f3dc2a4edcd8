package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fmi-tools/fmucheck/cosim"
	"github.com/fmi-tools/fmucheck/metrics"
	"github.com/fmi-tools/fmucheck/result"
	"github.com/fmi-tools/fmucheck/slave"
)

var (
	configPath string      // YAML config file
	flagConfig CheckConfig // values bound to run flags; applied only when set
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fmucheck",
	Short: "Co-simulation checker for FMI 1.0 slaves",
}

// runCmd simulates one slave and reports pass/fail
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a co-simulation check",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadCheckConfig(configPath)
		if err != nil {
			logrus.Fatalf("Could not load configuration: %v", err)
		}
		applyFlags(cmd.Flags(), &cfg)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		level, _ := logrus.ParseLevel(cfg.LogLevel)
		logrus.SetLevel(level)

		if _, err := runCheck(cfg, cmd.OutOrStdout()); err != nil {
			os.Exit(1)
		}
	},
}

// modelsCmd lists the built-in slaves
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the built-in co-simulation slaves",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range slave.Names() {
			desc, _ := slave.Describe(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, desc)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFlags copies every explicitly set flag over cfg, so flags win over
// the config file and the environment.
func applyFlags(flags *pflag.FlagSet, cfg *CheckConfig) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = flagConfig.Model
		case "location":
			cfg.Location = flagConfig.Location
		case "start-time":
			cfg.StartTime = flagConfig.StartTime
		case "stop-time":
			cfg.StopTime = flagConfig.StopTime
		case "step-size":
			cfg.StepSize = flagConfig.StepSize
		case "num-steps":
			cfg.NumSteps = flagConfig.NumSteps
		case "output":
			cfg.Output = flagConfig.Output
		case "format":
			cfg.Format = flagConfig.Format
		case "separator":
			cfg.Separator = flagConfig.Separator
		case "metrics-file":
			cfg.MetricsFile = flagConfig.MetricsFile
		case "plot":
			cfg.Plot = flagConfig.Plot
		case "log":
			cfg.LogLevel = flagConfig.LogLevel
		}
	})
}

// closableSink is a result sink that must be committed or discarded.
type closableSink interface {
	result.Writer
	Close() error
	Abort() error
}

// runCheck builds the slave and sinks for cfg, runs one session and prints
// the report to w. The returned error is the session's, or the first
// failure to persist results.
func runCheck(cfg CheckConfig, w io.Writer) (cosim.Outcome, error) {
	runID := uuid.New().String()
	entry := logrus.WithFields(logrus.Fields{"run": runID, "model": cfg.Model})

	opts, err := cfg.slaveOptions()
	if err != nil {
		return cosim.Outcome{Result: cosim.Error}, err
	}
	inst, err := slave.New(cfg.Model, opts)
	if err != nil {
		return cosim.Outcome{Result: cosim.Error}, err
	}

	recorder := result.NewRecorder(inst)
	sinks := result.Tee{recorder}
	var out closableSink
	switch cfg.Format {
	case FormatCSV:
		out, err = result.NewCSV(cfg.Output, inst, cfg.separator())
	case FormatSQLite:
		out, err = result.OpenSQLite(cfg.Output, runID, cfg.Model, inst)
	}
	if err != nil {
		return cosim.Outcome{Result: cosim.Error}, fmt.Errorf("open %s output: %w", cfg.Format, err)
	}
	if out != nil {
		sinks = append(sinks, out)
	}

	runMetrics := metrics.NewRecorder(cfg.Model)
	session := cosim.NewSession(cfg.sessionConfig(), inst, sinks, cosim.NewLogrusLog(entry.WithField("component", "cosim")))
	session.AddObserver(runMetrics)

	entry.Infof("Starting co-simulation check of %s", cfg.location())
	outcome, runErr := session.Run()

	if out != nil {
		// A run that never simulated leaves no result file behind.
		var closeErr error
		if outcome.Simulated {
			closeErr = out.Close()
		} else {
			closeErr = out.Abort()
		}
		if closeErr != nil {
			entry.Errorf("Could not save results to %s: %v", cfg.Output, closeErr)
			if runErr == nil {
				runErr = closeErr
				outcome.Result = cosim.Error
			}
		}
	}
	if cfg.MetricsFile != "" {
		if err := runMetrics.WriteTextfile(cfg.MetricsFile); err != nil {
			entry.Errorf("%v", err)
		}
	}

	printReport(w, cfg, outcome, runErr, recorder)
	return outcome, runErr
}

// init sets up CLI flags and subcommands
func init() {
	d := DefaultCheckConfig()

	runCmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	runCmd.Flags().StringVar(&flagConfig.Model, "model", d.Model, "Built-in slave to simulate (see: fmucheck models)")
	runCmd.Flags().StringVar(&flagConfig.Location, "location", "", "FMU location passed to instantiate (default builtin://<model>)")
	runCmd.Flags().Float64Var(&flagConfig.StartTime, "start-time", 0, "Start time used when the FMU declares none")
	runCmd.Flags().Float64Var(&flagConfig.StopTime, "stop-time", 0, "Stop time; overrides the FMU default when > 0")
	runCmd.Flags().Float64Var(&flagConfig.StepSize, "step-size", 0, "Communication step size; overrides --num-steps when > 0")
	runCmd.Flags().IntVar(&flagConfig.NumSteps, "num-steps", d.NumSteps, "Number of steps over the simulation window")
	runCmd.Flags().StringVar(&flagConfig.Output, "output", d.Output, "Result file")
	runCmd.Flags().StringVar(&flagConfig.Format, "format", d.Format, "Result format (csv, sqlite, none)")
	runCmd.Flags().StringVar(&flagConfig.Separator, "separator", d.Separator, "CSV field separator")
	runCmd.Flags().StringVar(&flagConfig.MetricsFile, "metrics-file", "", "Write Prometheus text-format metrics to this file")
	runCmd.Flags().StringVar(&flagConfig.Plot, "plot", "", "Output variable to chart after the run")
	runCmd.Flags().StringVar(&flagConfig.LogLevel, "log", d.LogLevel, "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(modelsCmd)
}
