package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/courseforge/markup/internal/errors"
	"github.com/courseforge/markup/internal/htmlmin"
	"github.com/courseforge/markup/pkg/document"
	"github.com/courseforge/markup/pkg/markup"
)

type renderOptions struct {
	format   string
	minify   bool
	indent   bool
	maxDepth int
}

func renderCmd(global *globalOptions) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a document",
		Long: `Render a YAML or JSON document to HTML or to a JSON element tree.

The document is read from the named file, or from stdin when the file is
"-" or omitted.

Examples:
  markup render page.yaml
  markup render --format json --indent page.yaml
  echo '["p", "hi"]' | markup render`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-depth") {
				opts.maxDepth = cfg.Render.MaxDepth
			}
			if !cmd.Flags().Changed("minify") {
				opts.minify = cfg.Render.Minify
			}

			file := "-"
			if len(args) == 1 {
				file = args[0]
			}
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			out, err := render(data, opts, cfg.NewLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "html", "Output format: html or json")
	cmd.Flags().BoolVarP(&opts.minify, "minify", "m", false, "Minify HTML output")
	cmd.Flags().BoolVar(&opts.indent, "indent", false, "Indent JSON output")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", markup.DefaultMaxDepth, "Maximum element nesting depth")

	return cmd
}

// readInput reads file, or r when file is "-".
func readInput(r io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(r)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Newf(errors.CategoryCLI, "cannot read %s", file).Wrap(err)
	}
	return data, nil
}

// render decodes a document and renders it in the requested format.
func render(data []byte, opts renderOptions, logger *slog.Logger) (string, error) {
	el, err := document.Decode(data, nil)
	if err != nil {
		return "", err
	}
	r := markup.NewRenderer(markup.RendererConfig{
		MaxDepth: opts.maxDepth,
		Logger:   logger,
	})

	switch opts.format {
	case "html":
		html, err := r.RenderToHTML(el)
		if err != nil {
			return "", err
		}
		if opts.minify {
			return htmlmin.New().String(html)
		}
		return html, nil

	case "json":
		tree, err := r.RenderToJSON(el)
		if err != nil {
			return "", err
		}
		var out []byte
		if opts.indent {
			out, err = document.EncodeJSONIndent(tree)
		} else {
			out, err = document.EncodeJSON(tree)
		}
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	return "", errors.Newf(errors.CategoryCLI, "unknown format %q", opts.format).
		WithSuggestion("Use --format html or --format json")
}
