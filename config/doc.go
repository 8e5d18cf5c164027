// SPDX-License-Identifier: MIT

// Package config loads solver settings from a YAML file and turns them into
// search options.
//
// A file only needs the keys it changes; the rest keep the values of
// Default. Environment variables prefixed IVLATH_ override the file (see
// ApplyEnv). SearchOptions builds the contractor pipeline, bisector and
// cell buffer named in the file for a given system.
//
//	prec: 1e-6
//	max_cells: 100000
//	time_limit: 30s
//	buffer: stack
//	bisector: smear-sum
//	contractor: [hc4, newton]
//	certify: true
//	workers: 4
//	log_level: info
package config
