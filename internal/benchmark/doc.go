// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the hot paths used when generating a
// PGO profile: toolfile parsing, argument formatting and a full run through a
// recording executor.
//
//	go test -run=^$ -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
