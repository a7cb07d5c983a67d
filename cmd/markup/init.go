package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/courseforge/markup/internal/config"
	"github.com/courseforge/markup/internal/errors"
)

const indexDocument = `- ""
- ["!doctype", {html: true}]
- - html
  - - head
    - [meta, {charset: utf-8}]
    - [title, markup]
  - - body
    - - main
      - [h1, Hello from markup]
      - [p, "Edit pages/index.yaml and reload."]
`

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a markup.yaml and a starter page",
		Long: `Create markup.yaml with the default settings and pages/index.yaml in
dir, or in the current directory.

Examples:
  markup init
  markup init site`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.Newf(errors.CategoryCLI, "%s already exists", configPath).
			WithSuggestion("Use --force to overwrite it")
	}

	cfg := config.Default()
	pagesDir := filepath.Join(dir, cfg.Server.Pages)
	if err := os.MkdirAll(pagesDir, 0755); err != nil {
		return errors.Newf(errors.CategoryCLI, "cannot create %s", pagesDir).Wrap(err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return err
	}

	index := filepath.Join(pagesDir, "index.yaml")
	if err := os.WriteFile(index, []byte(indexDocument), 0644); err != nil {
		return errors.Newf(errors.CategoryCLI, "cannot write %s", index).Wrap(err)
	}

	out := cmd.OutOrStdout()
	success(out, "Created %s", configPath)
	success(out, "Created %s", index)
	return nil
}
