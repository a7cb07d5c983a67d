package main

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/courseforge/markup/internal/errors"
)

func checkCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <files...>",
		Short: "Check documents for render errors",
		Long: `Decode and render each document, reporting the first error in each.

Exits with status 1 when any document fails.

Examples:
  markup check pages/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			opts := renderOptions{format: "html", maxDepth: cfg.Render.MaxDepth}

			out := cmd.OutOrStdout()
			failed := 0
			for _, file := range args {
				data, err := readInput(cmd.InOrStdin(), file)
				if err == nil {
					_, err = render(data, opts, nil)
				}
				if err != nil {
					failed++
					failure(out, "%s: %s", file, compact(err))
					continue
				}
				success(out, "%s", file)
			}

			if failed > 0 {
				return errors.Newf(errors.CategoryCLI, "%d of %d documents failed", failed, len(args))
			}
			return nil
		},
	}

	return cmd
}

// compact formats err on one line.
func compact(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.FormatCompact()
	}
	return err.Error()
}
