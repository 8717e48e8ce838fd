// Package collapse rebuilds a network as a flat two-level SOP network: one
// global BDD per combinational output, cofactored against a per-output
// don't-care set, then re-covered as an irredundant sum of products and
// wired as a single FuncSop node per output.
//
// Collapse is a single orchestrator over a fixed stage order — build,
// bound, extract, minimize — the same shape builder.BuildGraph uses to run
// a Constructor sequence against one resolved config: one public entry
// point, stages applied in order, and on the first failure Collapse
// returns (nil, false) immediately with no partial cleanup attempted.
package collapse
