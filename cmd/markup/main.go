// Command markup renders element documents to HTML or JSON and serves them
// over HTTP.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/courseforge/markup/internal/config"
	"github.com/courseforge/markup/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "markup",
		Short: "Render element documents to HTML and JSON",
		Long: `markup renders element trees stored as YAML or JSON documents.

A document is a nested array: a tag, optional props, then children.

  - main
  - [h1, Hello]
  - [p, {class: lead}, Rendered by markup.]

Commands render single documents, check a set of documents for errors,
or serve a page directory over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.ConfigFileName, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		renderCmd(opts),
		checkCmd(opts),
		serveCmd(opts),
		initCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads the configuration file and applies global overrides.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// failure prints a failure message.
func failure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
