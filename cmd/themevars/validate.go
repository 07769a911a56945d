// cmd/themevars/validate.go
package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codr1/themevars/internal/preset"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	var flags presetFlags

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that theme documents parse and build",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, root.cfg.PresetOptions())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				warnings, err := validateFile(path, opts)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", path)
				for _, warning := range warnings {
					fmt.Fprintf(out, "     warning: %s\n", warning)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d themes failed validation", failed, len(args))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func validateFile(path string, opts preset.Options) ([]string, error) {
	theme, err := readTheme(path)
	if err != nil {
		return nil, err
	}
	result, err := preset.NewBuilder(log.With().Str("file", path).Logger()).Build(theme, opts)
	if err != nil {
		return nil, err
	}
	return result.Warnings, nil
}
