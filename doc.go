// Package lsynth is a from-scratch logic synthesis toolkit: binary
// decision diagrams, a combinational/sequential network model, and a
// pipeline that takes a network from one big global BDD down to a chain
// of small lookup tables.
//
// Under the hood, everything is organized under per-concern subpackages:
//
//	dd/       — reduced, ordered BDD kernel with complemented edges and
//	            dynamic reordering
//	sop/      — tri-valued cube/cover algebra (two-level logic)
//	network/  — the PI/PO/latch/node/box object model, topo/ for
//	            traversal and levelization
//	gbb/      — global-BDD construction over a network's fanin cones
//	collapse/ — flattening a network to two-level SOP per output
//	fx/       — fast-extract divisor factoring
//	decomp/   — BDD-to-MUX conversion and K-input LUT-min decomposition
//	cascade/  — functional and structural LUT cascade synthesis
//
// Quick mental model:
//
//	network --gbb--> global BDD --collapse--> two-level SOP
//	       --fx--> factored network --decomp/cascade--> LUT network
//
// See each subpackage's own doc comment for the stage it owns.
package lsynth
