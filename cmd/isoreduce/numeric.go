// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/isoreduce/bspline"
	"github.com/katalvlaran/isoreduce/matrix"
	"github.com/katalvlaran/isoreduce/mvn"
)

// parseMatrix reads "a,b;c,d" as a row-major matrix.
func parseMatrix(s string) (*matrix.Dense, error) {
	var rows [][]float64
	for _, line := range strings.Split(s, ";") {
		var row []float64
		for _, f := range strings.Split(line, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("matrix %q: %w", s, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	return matrix.NewFromRows(rows)
}

func denseRows(m *matrix.Dense) [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i], _ = m.Row(i)
	}

	return out
}

type mvnReport struct {
	Cases       int         `yaml:"cases"`
	Seed        int64       `yaml:"seed"`
	Factor      [][]float64 `yaml:"factor"`
	Mean        []float64   `yaml:"sample_mean,flow"`
	Covariance  [][]float64 `yaml:"sample_covariance"`
	Correlation [][]float64 `yaml:"sample_correlation"`
}

func newMVNCmd(a *app) *cobra.Command {
	var (
		mean  []float64
		cov   string
		cases int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "mvn",
		Short: "Draw multivariate-normal samples and report their moments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sigma, err := parseMatrix(cov)
			if err != nil {
				return err
			}
			s, err := mvn.NewSampler(mean, sigma, mvn.WithSeed(seed))
			if err != nil {
				return err
			}
			X, err := s.Draw(cases)
			if err != nil {
				return err
			}
			rep := mvnReport{Cases: cases, Seed: seed, Factor: denseRows(s.Factor())}
			if cases > 1 {
				C, means, err := matrix.Covariance(X)
				if err != nil {
					return err
				}
				R, _, _, err := matrix.Correlation(X)
				if err != nil {
					return err
				}
				rep.Mean, rep.Covariance, rep.Correlation = means, denseRows(C), denseRows(R)
			}
			a.log.WithFields(logrus.Fields{"component": "mvn", "cases": cases, "dim": s.Dim()}).Debug("sampled")

			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(rep)
		},
	}
	cmd.Flags().Float64SliceVar(&mean, "mean", nil, "Mean vector, comma separated")
	cmd.Flags().StringVar(&cov, "cov", "", `Covariance matrix, rows separated by ";" (e.g. "4,2;2,3")`)
	cmd.Flags().IntVar(&cases, "cases", 1000, "Number of draws")
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (0: fixed default)")
	_ = cmd.MarkFlagRequired("mean")
	_ = cmd.MarkFlagRequired("cov")

	return cmd
}

func newBasisCmd(_ *app) *cobra.Command {
	var (
		from, to         float64
		points           int
		segments, degree int
	)
	cmd := &cobra.Command{
		Use:   "basis",
		Short: "Print a B-spline basis over equally spaced points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := matrix.Linspace(from, to, points)
			if err != nil {
				return err
			}
			B, err := bspline.Basis(x, segments, degree)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), B.String())

			return err
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0, "First abscissa")
	cmd.Flags().Float64Var(&to, "to", 1, "Last abscissa")
	cmd.Flags().IntVar(&points, "points", 11, "Number of abscissae")
	cmd.Flags().IntVar(&segments, "segments", 4, "Number of spline segments")
	cmd.Flags().IntVar(&degree, "degree", 3, "Spline degree")

	return cmd
}
