// Package isoreduce is a toolkit for reducing multi-collector isotope-ratio
// mass-spectrometry data, from raw instrument exports to the design matrices
// a statistical fit consumes.
//
// 🚀 What is in the box?
//
//	• Ingest: tolerant parser for Phoenix-style delimited exports
//	• Methods: YAML analysis methods (species, detectors, sequence table)
//	• Accumulation: baseline and on-peak readings as one flat channel
//	• Interpolation: per-block cycle-time alignment matrices
//	• Linear algebra: dense matrices, factorizations, NNLS, statistics
//	• Sampling: multivariate-normal draws through a Cholesky factor
//	• Splines: equally spaced B-spline bases by differences of truncated powers
//
// Layout:
//
//	accumulate/ - reading accumulator (baseline + on-peak passes)
//	bspline/    - B-spline basis builder
//	cmd/        - isoreduce command line
//	ingest/     - export parser and typed malformed-input errors
//	interp/     - block layout discovery and cycle interpolation matrices
//	matrix/     - dense linear algebra primitives
//	method/     - analysis method model and YAML loader
//	mvn/        - multivariate-normal sampler
//	reduce/     - end-to-end reduction into a single Record
//
// Quick start:
//
//	rows, _ := ingest.Parse(f)
//	rec, _ := reduce.Reduce(ctx, rows, method.BurdickSynthetic())
//	fmt.Println(rec.Summary().Samples)
//
//	go install github.com/katalvlaran/isoreduce/cmd/isoreduce@latest
package isoreduce
