// SPDX-License-Identifier: MIT

// Package cell defines the unit of work of the branch-and-bound search, a
// box with backtrackable properties, and the buffers that order live cells.
//
// Ownership: a cell popped from a buffer is owned exclusively by the caller
// until it is pushed back or dropped. Split never shares properties between
// siblings; every property is copied and then updated for the child's box.
//
// Buffers:
//   - Stack: LIFO, depth-first exploration;
//   - Queue: FIFO, breadth-first exploration;
//   - Heap: smallest cost first for a CostFunc (LargestFirst, MinLB, MinUB,
//     Depth), ties broken by insertion order;
//   - DoubleHeap: two heaps over the same cells, popping from the first with
//     a fixed probability and from the second otherwise.
//
// Buffers are not safe for concurrent use; parallel searches own one each.
package cell
