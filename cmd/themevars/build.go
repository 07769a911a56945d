// cmd/themevars/build.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/themevars/internal/css"
	"github.com/codr1/themevars/internal/preset"
)

const (
	emitCSS  = "css"
	emitJSON = "json"
	emitAll  = "all"
)

type buildOptions struct {
	preset presetFlags
	out    string
	emit   string
	layer  string
}

type buildOutput struct {
	name   string
	css    []byte
	preset []byte
}

func newBuildCmd(root *rootOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build FILE...",
		Short: "Build stylesheets and presets from theme documents",
		Long: `Build each theme document and write NAME.css and/or NAME.preset.json into
--out. With a single file and no --out, the output goes to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presetOpts, err := opts.preset.options(cmd, root.cfg.PresetOptions())
			if err != nil {
				return err
			}

			switch opts.emit {
			case emitCSS, emitJSON:
			case emitAll:
				if opts.out == "" {
					return fmt.Errorf("--emit all requires --out")
				}
			default:
				return fmt.Errorf("invalid --emit %q (want css, json, or all)", opts.emit)
			}
			if opts.out == "" && len(args) > 1 {
				return fmt.Errorf("--out is required when building more than one file")
			}

			outputs, err := buildFiles(cmd, args, presetOpts, opts)
			if err != nil {
				return err
			}

			if opts.out == "" {
				out := outputs[0]
				if opts.emit == emitJSON {
					_, err = cmd.OutOrStdout().Write(out.preset)
				} else {
					_, err = cmd.OutOrStdout().Write(out.css)
				}
				return err
			}
			return writeOutputs(opts.out, opts.emit, outputs)
		},
	}

	opts.preset.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory")
	cmd.Flags().StringVar(&opts.emit, "emit", emitCSS, "what to write: css, json, or all")
	cmd.Flags().StringVar(&opts.layer, "layer", "", "wrap the stylesheet in @layer NAME")

	return cmd
}

// buildFiles builds every path concurrently. Outputs keep argument order; the
// first failure cancels the rest.
func buildFiles(cmd *cobra.Command, paths []string, presetOpts preset.Options, opts *buildOptions) ([]buildOutput, error) {
	outputs := make([]buildOutput, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			theme, err := readTheme(path)
			if err != nil {
				return err
			}

			builder := preset.NewBuilder(log.With().Str("file", path).Logger())
			result, err := builder.Build(theme, presetOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			var cssBuf bytes.Buffer
			if err := css.Render(&cssBuf, result.BaseStyles, css.Options{Layer: opts.layer}); err != nil {
				return fmt.Errorf("%s: render css: %w", path, err)
			}

			presetJSON, err := encodePreset(result.Preset())
			if err != nil {
				return fmt.Errorf("%s: encode preset: %w", path, err)
			}

			outputs[i] = buildOutput{
				name:   themeName(path),
				css:    cssBuf.Bytes(),
				preset: presetJSON,
			}
			log.Debug().Str("file", path).Int("variables", len(result.LightVariables)+len(result.DarkVariables)).Msg("Built theme")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func encodePreset(p preset.Preset) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeOutputs(dir string, emit string, outputs []buildOutput) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	seen := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		if seen[out.name] {
			return fmt.Errorf("two inputs share the output name %q", out.name)
		}
		seen[out.name] = true
	}

	for _, out := range outputs {
		if emit == emitCSS || emit == emitAll {
			if err := writeFile(filepath.Join(dir, out.name+".css"), out.css); err != nil {
				return err
			}
		}
		if emit == emitJSON || emit == emitAll {
			if err := writeFile(filepath.Join(dir, out.name+".preset.json"), out.preset); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("bytes", len(data)).Msg("Wrote output")
	return nil
}
