// SPDX-License-Identifier: MIT

// Package covering stores the outcome of a paving run: the reported boxes
// with their status, the run statistics and an identifier.
//
// A Covering is built from a search.Report and can be written as a line
// oriented text file (WriteText, read back by ReadText), as JSON
// (WriteJSON), or saved in a SQLite database through a Store. Run
// identifiers are time-ordered UUIDv7 values, so listing runs by id lists
// them by creation time.
package covering
