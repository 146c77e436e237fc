// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/isoreduce/ingest"
	"github.com/katalvlaran/isoreduce/method"
	"github.com/katalvlaran/isoreduce/reduce"
)

func loadMethod(path string) (*method.Method, error) {
	if path == "" {
		return method.BurdickSynthetic(), nil
	}

	return method.Load(path)
}

func newReduceCmd(a *app) *cobra.Command {
	var (
		methodPath   string
		runID        string
		splineDegree int
		concurrency  int
	)
	cmd := &cobra.Command{
		Use:   "reduce <data-file>",
		Short: "Reduce one export and print a YAML summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMethod(methodPath)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			rows, err := ingest.Parse(f)
			if err != nil {
				return err
			}

			opts := []reduce.Option{reduce.WithLogger(a.log), reduce.WithConcurrency(concurrency)}
			if runID != "" {
				id, err := uuid.Parse(runID)
				if err != nil {
					return fmt.Errorf("--run-id: %w", err)
				}
				opts = append(opts, reduce.WithRunID(id))
			}
			if splineDegree >= 0 {
				opts = append(opts, reduce.WithSplineDegree(splineDegree))
			}
			rec, err := reduce.Reduce(cmd.Context(), rows, m, opts...)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err = enc.Encode(rec.Summary()); err != nil {
				return err
			}

			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&methodPath, "method", "", "Analysis method YAML (default: built-in Burdick synthetic method)")
	cmd.Flags().StringVar(&runID, "run-id", "", "Fixed run UUID (default: random)")
	cmd.Flags().IntVar(&splineDegree, "spline-degree", -1, "Also build per-block B-spline bases of this degree (-1: off)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Max blocks interpolated at once (0: unlimited)")

	return cmd
}

func newMethodCmd(_ *app) *cobra.Command {
	var methodPath string
	root := &cobra.Command{
		Use:   "method",
		Short: "Inspect analysis methods",
	}
	dump := &cobra.Command{
		Use:   "dump",
		Short: "Validate a method and print it as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := loadMethod(methodPath)
			if err != nil {
				return err
			}

			return method.Encode(cmd.OutOrStdout(), m)
		},
	}
	dump.Flags().StringVar(&methodPath, "method", "", "Analysis method YAML (default: built-in Burdick synthetic method)")
	root.AddCommand(dump)

	return root
}
