package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"xlate/internal/model"
	"xlate/internal/symfmt"
)

var (
	resolveQueue      []string
	resolveNoCheck    bool
	renameShowSymbols bool
)

func init() {
	resolveCmd.Flags().StringSliceVar(&resolveQueue, "queue", nil, "qualified type names resolved before scanning (repeatable)")
	resolveCmd.Flags().BoolVar(&resolveNoCheck, "no-check", false, "skip table validation")
	renameCmd.Flags().BoolVar(&renameShowSymbols, "symbols", false, "also list the renamed symbol table")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <model" + model.Ext + ">",
	Short: "Resolve every unit and list its symbols",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModel(cmd, args, runOptions{
			title:   "resolving",
			sel:     symfmt.Select{Symbols: true, Renames: true},
			queue:   resolveQueue,
			noCheck: resolveNoCheck,
		})
	},
}

var scopesCmd = &cobra.Command{
	Use:   "scopes <model" + model.Ext + ">",
	Short: "Print the scope tree of every unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		off := false
		return runModel(cmd, args, runOptions{
			title:  "scanning",
			sel:    symfmt.Select{Scopes: true},
			rename: &off,
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <model" + model.Ext + ">",
	Short: "Apply target naming rules and list the renames",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on := true
		return runModel(cmd, args, runOptions{
			title:  "renaming",
			sel:    symfmt.Select{Renames: true, Symbols: renameShowSymbols},
			rename: &on,
		})
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample [path]",
	Short: "Write a small demonstration model",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "sample" + model.Ext
		if len(args) == 1 {
			path = args[0]
		}
		if !strings.HasSuffix(path, model.Ext) {
			return fmt.Errorf("model files must end in %s", model.Ext)
		}
		if err := model.WriteFile(path, model.Sample()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Clean(path))
		return nil
	},
}
