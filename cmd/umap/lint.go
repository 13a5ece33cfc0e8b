package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"universal-mapper/remap"
)

func newLintCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lint FILE...",
		Short: "Validate remap files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, root, args)
		},
	}
}

func runLint(cmd *cobra.Command, root *rootOptions, files []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range files {
		root.logger.Debug("linting remap file", zap.String("file", path))

		f, err := remap.LoadFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			failed++
			continue
		}

		diags := f.Validate(nil)
		for _, d := range diags.All() {
			fmt.Fprintf(out, "%s: %s: %s\n", path, d.Severity, d)
		}

		if diags.HasErrors() {
			failed++
		}

		root.logger.Debug("linted remap file",
			zap.String("file", path),
			zap.Int("mappings", len(f.Mappings)),
			zap.Int("diagnostics", diags.Len()),
		)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(files))
	}

	return nil
}
