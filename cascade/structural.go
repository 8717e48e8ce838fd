package cascade

import (
	"math"
	"math/rand"

	"github.com/vlsitools/lsynth/network"
	"github.com/vlsitools/lsynth/topo"
)

type edgeKey struct {
	src, dst uint64
}

// OptimizeStructural picks a set of direct (zero/near-zero delay)
// connections in an already-mapped network to minimize its worst-case
// path delay, by repeatedly marking the most critical remaining edge
// direct and keeping the move only if it improves the overall delay
// (a greedy local search, restarted params.NIters times from an empty
// direct-edge set with an independent PRNG substream per restart,
// grounded on tsp's iterated-restart/per-pass-PRNG convention). Returns
// nil if net is nil, the fanin graph has a cycle, or delay has a
// negative component.
func OptimizeStructural(net *network.Network, delay DelayModel, params StructuralParams) *StructuralResult {
	if net == nil {
		return nil
	}
	if delay.Lut < 0 || delay.Route < 0 || delay.Direct < 0 {
		return nil
	}
	order, err := topo.TopoOrder(net)
	if err != nil {
		return nil
	}

	_, _, startDelay := propagate(net, order, delay, nil)

	nIters := params.NIters
	if nIters <= 0 {
		nIters = 1
	}
	base := rngFromSeed(params.Seed)

	bestDelay := math.Inf(1)
	var bestEdges map[edgeKey]bool
	for iter := 0; iter < nIters; iter++ {
		rng := deriveRNG(base, uint64(iter))
		edges, total := runPass(net, order, delay, rng)
		if total < bestDelay {
			bestDelay = total
			bestEdges = edges
		}
	}
	if bestEdges == nil {
		bestEdges = make(map[edgeKey]bool)
		bestDelay = startDelay
	}

	res := &StructuralResult{Delay: bestDelay, StartDelay: startDelay}
	for e := range bestEdges {
		res.DirectEdges = append(res.DirectEdges, [2]uint64{e.src, e.dst})
	}
	res.Cascades = groupCascades(order, bestEdges)
	return res
}

func selfDelay(obj *network.Object, delay DelayModel) float64 {
	if obj.Kind == network.ObjNode || obj.Kind == network.ObjAigAnd {
		return delay.Lut
	}
	return 0
}

// propagate computes forward arrival times and backward required times
// over order given the current set of edges marked direct, and returns
// the circuit's overall delay (the maximum arrival time at any PO).
func propagate(net *network.Network, order []uint64, delay DelayModel, direct map[edgeKey]bool) (arrival, required map[uint64]float64, total float64) {
	arrival = make(map[uint64]float64, len(order))
	for _, id := range order {
		obj, ok := net.Object(id)
		if !ok {
			continue
		}
		a := 0.0
		for _, fe := range obj.Fanins {
			cost := delay.Route
			if direct[edgeKey{fe.Src, id}] {
				cost = delay.Direct
			}
			if v := arrival[fe.Src] + cost; v > a {
				a = v
			}
		}
		arrival[id] = a + selfDelay(obj, delay)
		if obj.Kind == network.ObjPO && arrival[id] > total {
			total = arrival[id]
		}
	}

	required = make(map[uint64]float64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		obj, ok := net.Object(id)
		if !ok {
			continue
		}
		if obj.Kind == network.ObjPO || len(obj.Fanouts) == 0 {
			required[id] = total
			continue
		}
		r := math.Inf(1)
		for fo := range obj.Fanouts {
			foObj, ok := net.Object(fo)
			if !ok {
				continue
			}
			cost := delay.Route
			if direct[edgeKey{id, fo}] {
				cost = delay.Direct
			}
			if v := required[fo] - selfDelay(foObj, delay) - cost; v < r {
				r = v
			}
		}
		required[id] = r
	}
	return arrival, required, total
}

// criticalEdges returns every fanin edge whose slack equals the
// network-wide minimum slack (within a small epsilon), the candidates
// for the next direct-edge move.
func criticalEdges(net *network.Network, order []uint64, arrival, required map[uint64]float64, delay DelayModel, direct map[edgeKey]bool) []edgeKey {
	type scored struct {
		e     edgeKey
		slack float64
	}
	var all []scored
	minSlack := math.Inf(1)
	for _, id := range order {
		obj, ok := net.Object(id)
		if !ok {
			continue
		}
		self := selfDelay(obj, delay)
		for _, fe := range obj.Fanins {
			cost := delay.Route
			if direct[edgeKey{fe.Src, id}] {
				cost = delay.Direct
			}
			slack := (required[id] - self - cost) - arrival[fe.Src]
			all = append(all, scored{edgeKey{fe.Src, id}, slack})
			if slack < minSlack {
				minSlack = slack
			}
		}
	}
	const eps = 1e-9
	var crit []edgeKey
	for _, s := range all {
		if s.slack <= minSlack+eps {
			crit = append(crit, s.e)
		}
	}
	return crit
}

// runPass runs one independent randomized greedy improvement search
// from an empty direct-edge set, returning the final edge set and its
// resulting circuit delay.
func runPass(net *network.Network, order []uint64, delay DelayModel, rng *rand.Rand) (map[edgeKey]bool, float64) {
	direct := make(map[edgeKey]bool)
	arrival, required, total := propagate(net, order, delay, direct)
	tried := make(map[edgeKey]bool)

	for {
		crit := criticalEdges(net, order, arrival, required, delay, direct)
		choices := make([]edgeKey, 0, len(crit))
		for _, e := range crit {
			if !direct[e] && !tried[e] {
				choices = append(choices, e)
			}
		}
		if len(choices) == 0 {
			break
		}
		pick := choices[rng.Intn(len(choices))]

		trial := make(map[edgeKey]bool, len(direct)+1)
		for k, v := range direct {
			trial[k] = v
		}
		trial[pick] = true
		newArrival, newRequired, newTotal := propagate(net, order, delay, trial)

		if newTotal < total-1e-9 {
			direct, arrival, required, total = trial, newArrival, newRequired, newTotal
			tried = make(map[edgeKey]bool)
		} else {
			tried[pick] = true
		}
	}
	return direct, total
}

// groupCascades chains consecutive direct edges into cascades: each
// chain starts at an object that is not itself the destination of a
// direct edge and follows direct edges forward until none remain.
func groupCascades(order []uint64, direct map[edgeKey]bool) [][]uint64 {
	next := make(map[uint64]uint64)
	isDst := make(map[uint64]bool)
	for e := range direct {
		next[e.src] = e.dst
		isDst[e.dst] = true
	}

	var chains [][]uint64
	visited := make(map[uint64]bool)
	for _, id := range order {
		if isDst[id] || visited[id] {
			continue
		}
		if _, has := next[id]; !has {
			continue
		}
		chain := []uint64{id}
		visited[id] = true
		cur := id
		for {
			nx, ok := next[cur]
			if !ok || visited[nx] {
				break
			}
			chain = append(chain, nx)
			visited[nx] = true
			cur = nx
		}
		chains = append(chains, chain)
	}
	return chains
}
