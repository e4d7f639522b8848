package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xlate/internal/config"
	"xlate/internal/driver"
	"xlate/internal/trace"
)

// setupTracing reads the trace flags, falling back to the [trace] section of
// cfg for flags left unset, and attaches the tracer to the command context.
// The returned cleanup stops the heartbeat and flushes the tracer.
func setupTracing(cmd *cobra.Command, cfg config.Trace) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	if !flags.Changed("trace") && cfg.Output != "" {
		traceOutput = cfg.Output
	}
	if !flags.Changed("trace-level") && cfg.Level != "" {
		levelStr = cfg.Level
	}
	if !flags.Changed("trace-mode") && cfg.Mode != "" {
		modeStr = cfg.Mode
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff && traceOutput == "" {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	// an output path without a level means "trace phases"
	if level == trace.LevelOff {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	if traceOutput != "" && !flags.Changed("trace-mode") && mode == trace.ModeRing {
		mode = trace.ModeBoth
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	var heartbeat *trace.Heartbeat
	if heartbeatInterval > 0 {
		heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}

	return func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

// dumpOnPanic prints the fatal unit's stack and, when a ring tracer is
// active, the most recent trace events to stderr.
func dumpOnPanic(cmd *cobra.Command, err error) {
	pe, ok := driver.FirstPanic(err)
	if !ok {
		return
	}
	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "%v\n%s\n", pe, pe.Stack)
	ring, ok := trace.Ring(trace.FromContext(cmd.Context()))
	if !ok {
		return
	}
	fmt.Fprintln(out, "--- last trace events ---")
	if dumpErr := ring.Dump(out, trace.FormatText); dumpErr != nil {
		fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", dumpErr)
	}
}
