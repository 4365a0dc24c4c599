// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the iwfm-submodel CLI. Each
// subcommand rewrites one IWFM input file family for a submodel; plan runs
// a batch of them from a YAML file.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/iwfm-submodel/internal/report"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from configuration before any subcommand runs.
var logger = zap.NewNop()

// clock times single conversions.
var clock = clockwork.NewRealClock()

// rootCmd is the base command for the iwfm-submodel CLI.
var rootCmd = &cobra.Command{
	Use:   "iwfm-submodel",
	Short: "Extract IWFM input files for a submodel",
	Long: `iwfm-submodel rewrites IWFM model input files for a submodel: a model
reduced to a subset of its elements and stream nodes.

Land-use rows of elements outside the submodel are removed, stream inflow
rows for stream nodes outside the submodel are kept with the node set to 0,
lakes are reduced to their submodel elements, and the preprocessor main
file is pointed at the submodel's files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		}
		if viper.GetBool("verbose") {
			cfg.Level = "debug"
		}
		l, err := report.NewLogger(cfg.Level, cfg.Format)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./iwfm-submodel.yaml or ~/.config/iwfm-submodel/config.yaml)")
	pf.BoolP("verbose", "v", false, "log conversion details")
	pf.String("log-level", "info", "log level: debug, info, warn, or error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("metrics-file", "", "write conversion metrics to this Prometheus textfile")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("metrics_file", pf.Lookup("metrics-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("iwfm-submodel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "iwfm-submodel"))
		}
	}

	viper.SetEnvPrefix("IWFM_SUBMODEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// reportedError marks a conversion error that the reporter has already
// printed as a status line.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// finishRun combines the outcome of a conversion with the outcome of
// flushing metrics. The conversion error alone is already reported.
func finishRun(convErr, finishErr error) error {
	if finishErr != nil {
		return errors.Join(convErr, finishErr)
	}
	if convErr != nil {
		return reportedError{convErr}
	}
	return nil
}

// newReporter returns the reporter for a command run and a function that
// flushes metrics once the run is done. Events without an elapsed time are
// stamped with the time since newReporter was called.
func newReporter(cmd *cobra.Command) (report.Reporter, func() error) {
	metrics := report.NewMetrics()
	out := report.Multi(report.Writer(cmd.OutOrStdout()), report.Zap(logger), metrics)

	start := clock.Now()
	rep := report.Func(func(e report.Event) {
		if e.Elapsed == 0 {
			e.Elapsed = clock.Since(start)
		}
		out.Report(e)
	})

	finish := func() error {
		path := viper.GetString("metrics_file")
		if path == "" {
			return nil
		}
		return metrics.WriteTextfile(path)
	}
	return rep, finish
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
