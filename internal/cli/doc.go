// SPDX-License-Identifier: MIT

// Package cli implements the ivsolve command tree: list, solve, optimize,
// runs and show. Commands print their results on stdout in text or JSON
// and log to stderr through slog.
package cli
