// File: doc.go
// Role: LUT cascade synthesis in two independent modes sharing one output
// type (Cascade): a functional mode that decomposes a truth table into a
// chain of K-input LUTs connected by a fixed number of "rail" signals, and
// a structural mode that picks direct (zero-delay) edges in an
// already-mapped network to minimize critical-path delay, grounded on
// dijkstra's relaxation loop (arrival/required time propagation) and
// tsp's iterated-restart pattern (bounded random restarts, explicit
// per-pass PRNG, keep the best of n_iters trials).
package cascade
