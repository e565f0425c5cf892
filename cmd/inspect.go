package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/okian/f1predict/internal/inference"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load the model artifact and describe it",
		Long:  "inspect loads the configured artifact exactly as serve would and prints its\nestimator, feature order and whether it reports probabilities.",
		Args:  cobra.NoArgs,
		RunE:  runInspect,
	}
	cmd.Flags().StringP("output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	clf, err := inference.MemoLoader(cfg.ModelPath)()
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	info := inference.Describe(clf)

	format, _ := cmd.Flags().GetString("output")
	return writeInfo(cmd.OutOrStdout(), info, cfg.ModelPath, format)
}

func writeInfo(w io.Writer, info inference.Info, path, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(info)
	case "text", "":
		_, err := fmt.Fprintf(w,
			"path:          %s\nmodel:         %s\nestimator:     %s\nsteps:         %s\nprobabilistic: %t\nfeatures:      %s\n",
			path, info.Name, info.Estimator,
			strings.Join(info.Steps, " -> "),
			info.Probabilistic,
			strings.Join(info.Features, ", "),
		)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
