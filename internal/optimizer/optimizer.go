// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package optimizer performs peephole optimization over the IR stream.
package optimizer

import "nickandperla.net/rmscript/internal/ir"

// Optimize merges runs of consecutive waits into one and drops movements
// that drive no channel. Order, count, and metadata of every other entry are
// preserved; waits never merge across a non-wait entry. Optimize is
// idempotent.
func Optimize(actions []ir.Action) []ir.Action {
	optimized := make([]ir.Action, 0, len(actions))

	for i := 0; i < len(actions); {
		switch a := actions[i].(type) {
		case *ir.Wait:
			// Collapse the whole run, keeping the first wait's metadata.
			// A run of zero-duration waits still yields one zero wait.
			total := a.Duration
			j := i + 1
			for j < len(actions) {
				next, ok := actions[j].(*ir.Wait)
				if !ok {
					break
				}
				total += next.Duration
				j++
			}
			if j == i+1 {
				optimized = append(optimized, a)
			} else {
				optimized = append(optimized, &ir.Wait{Duration: total, Line: a.Line})
			}
			i = j

		case *ir.Movement:
			if !a.IsNoop() {
				optimized = append(optimized, a)
			}
			i++

		default:
			optimized = append(optimized, actions[i])
			i++
		}
	}

	return optimized
}
