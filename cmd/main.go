// Command f1predict serves the F1 top-finish prediction page.
//
// Usage:
//
//	f1predict [serve] [--addr=:8501] [--model=model/best_pipeline.json]
//	f1predict inspect [--model=<path>] [-o text|json|yaml]
package main

import (
	"fmt"
	"os"

	"github.com/okian/f1predict/internal/config"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "f1predict",
		Short: "Predict F1 top finishes from race statistics",
		Long: "f1predict serves a single-page form that collects nine race statistics,\n" +
			"runs them through a pre-trained classifier and shows the verdict with its confidence.",
		SilenceUsage: true,
		RunE:         runServe,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.PersistentFlags().String("model", "", "model artifact path (overrides "+config.EnvPrefix+"MODEL_PATH)")
	root.Flags().String("addr", "", "HTTP listen address (overrides "+config.EnvPrefix+"ADDR)")

	root.AddCommand(newServeCmd(), newInspectCmd())
	root.Version = version
	return root
}

// loadConfig layers command line flags over config.Load.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("model"); f != nil && f.Changed {
		cfg.ModelPath = f.Value.String()
	}
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
		cfg.Addr = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
