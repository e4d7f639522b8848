package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"xlate/internal/config"
	"xlate/internal/driver"
	"xlate/internal/model"
	"xlate/internal/symfmt"
)

// runOptions captures what a subcommand adds on top of the global flags.
type runOptions struct {
	title   string
	sel     symfmt.Select
	queue   []string
	rename  *bool
	noCheck bool
}

// runModel loads the model named by args, runs every unit and prints the
// selected sections. Diagnostics with errors make the command fail.
func runModel(cmd *cobra.Command, args []string, ro runOptions) (err error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return err
	}
	formatStr, err := flags.GetString("format")
	if err != nil {
		return err
	}
	format, err := symfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return err
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	modelPath := args[0]
	cfg, err := config.Discover(configPath, filepath.Dir(modelPath))
	if err != nil {
		return err
	}
	cfg.Resolve.Queue = append(cfg.Resolve.Queue, ro.queue...)
	if ro.rename != nil {
		cfg.Naming.Enabled = ro.rename
	}
	if ro.noCheck {
		cfg.Resolve.Validate = false
	}

	cleanup, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		return err
	}
	defer cleanup()

	m, digest, err := model.ReadFile(modelPath)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	opts := driver.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Timings:        timings,
	}

	var results []*driver.Result
	if shouldUseTUI(mode, format != symfmt.FormatText) {
		title := fmt.Sprintf("%s %s (%x)", ro.title, filepath.Base(modelPath), digest[:4])
		results, err = runWithUI(ctx, title, m, opts)
	} else {
		results, err = driver.RunAll(ctx, m, opts)
	}
	defer func() {
		for _, res := range results {
			res.Close()
		}
	}()
	if err != nil {
		dumpOnPanic(cmd, err)
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted")
		}
		return err
	}

	sel := ro.sel
	sel.Timing = timings
	views := make([]symfmt.UnitView, 0, len(results))
	failed := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		views = append(views, symfmt.FromResult(res, sel))
		if res.Bag.HasErrors() {
			failed++
		}
	}
	out := cmd.OutOrStdout()
	width := 0
	if out == os.Stdout {
		width = terminalWidth()
	}
	if err := symfmt.Write(out, format, views, symfmt.Options{Color: colorOn(), Width: width}); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d units failed", failed, len(results))
	}
	return nil
}
