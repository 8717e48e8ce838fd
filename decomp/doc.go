// File: doc.go
// Role: Converts a per-node global BDD back into network structure: either
// a direct MUX-tree realization (BddToMux) or a K-input-LUT-bounded
// network (LutMin), grounded on gridgraph's domain-partitioning concept —
// there a 2D grid is split into bounded neighborhoods/components; here a
// BDD's variable support is split into a bound set (consumed locally, like
// a neighborhood) and a free set (carried to the next stage, like a
// component boundary), with the bound set chosen to minimize how many
// distinct "views" (column functions) the rest of the network has to
// distinguish between.
package decomp
