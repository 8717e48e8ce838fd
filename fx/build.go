// File: build.go
// Role: Matrix.Build — populates the variable/cube/literal slabs from the
// caller's NodeCovers, enumerates single-cube divisors by column
// coincidence and double-cube divisors by intra-node cube pairing (capped
// by PairsMax via a literal-difference histogram when the raw pair count
// would overrun it, grounded on dtw's distance-matrix counting), and seeds
// both heaps.
package fx

import (
	"container/heap"
	"sort"
)

// candPair is one intra-node cube pair considered during construction,
// before it is either discarded (empty side) or turned into a cubePair
// attached to a doubleDivisor.
type candPair struct {
	r1, r2           int32
	nonBase1, nonBase2 []int32 // variable column indices, sorted
	distance         int
}

// Build constructs a Matrix from covers. It returns ErrDistanceViolation
// if any two cubes of the same node are identical (distance 0) or differ
// by exactly one literal (distance 1) — both invalid cube-pair inputs per
// spec §4.6 — without creating partial state the caller could act on.
func Build(covers []NodeCover, p Params) (*Matrix, error) {
	p = p.normalize()
	m := newMatrix(p)

	var allCands []candPair
	totalPairs := 0

	for _, nc := range covers {
		if nc.Cover == nil || len(nc.Cover.Cubes) == 0 {
			continue
		}
		nodeIdx := m.registerNode(nc.Node, nc.Cover.Phase)

		rows := make([]int32, 0, len(nc.Cover.Cubes))
		for _, cb := range nc.Cover.Cubes {
			row := m.addCube(nodeIdx)
			rows = append(rows, row)
			for pos := 0; pos < len(cb) && pos < len(nc.Fanins); pos++ {
				switch cb[pos] {
				case '1':
					col := m.varFor(encodeLit(nc.Fanins[pos].Src, false))
					m.appendLiteral(row, col)
				case '0':
					col := m.varFor(encodeLit(nc.Fanins[pos].Src, true))
					m.appendLiteral(row, col)
				}
			}
		}

		n := len(rows)
		totalPairs += n * (n - 1) / 2
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				cp, err := m.makeCandPair(rows[i], rows[j])
				if err != nil {
					return nil, err
				}
				if cp != nil {
					allCands = append(allCands, *cp)
				}
			}
		}
	}

	selected := allCands
	if p.PairsMax > 0 && totalPairs > p.PairsMax {
		selected = selectByHistogram(allCands, p.PairsMax)
	}

	for _, cp := range selected {
		m.insertCubePair(cp)
	}

	m.buildSingleDivisors()

	for _, sd := range m.singles {
		heap.Push(m.sh, sd)
	}
	for _, bucket := range m.doubles {
		for _, dd := range bucket {
			heap.Push(m.dh, dd)
		}
	}

	return m, nil
}

// makeCandPair computes the base/non-base split of rows r1, r2 (cubes of
// the same node) and returns the candidate, or nil if the pair is not a
// useful cube-free divisor source (one side has no non-base literal,
// i.e. one cube is a literal superset of the other beyond distance 1).
func (m *Matrix) makeCandPair(r1, r2 int32) (*candPair, error) {
	cols1 := m.cubeLits(r1)
	cols2 := m.cubeLits(r2)

	in2 := make(map[int32]bool, len(cols2))
	for _, c := range cols2 {
		in2[c] = true
	}
	in1 := make(map[int32]bool, len(cols1))
	for _, c := range cols1 {
		in1[c] = true
	}

	var nonBase1, nonBase2 []int32
	for _, c := range cols1 {
		if !in2[c] {
			nonBase1 = append(nonBase1, c)
		}
	}
	for _, c := range cols2 {
		if !in1[c] {
			nonBase2 = append(nonBase2, c)
		}
	}

	distance := len(nonBase1) + len(nonBase2)
	if distance <= 1 {
		return nil, ErrDistanceViolation
	}
	if len(nonBase1) == 0 || len(nonBase2) == 0 {
		return nil, nil
	}
	return &candPair{r1: r1, r2: r2, nonBase1: nonBase1, nonBase2: nonBase2, distance: distance}, nil
}

// selectByHistogram buckets cands by distance and keeps the lowest
// distances first, filling up to max total, ties (within the cutoff
// distance) broken by encounter order.
func selectByHistogram(cands []candPair, max int) []candPair {
	counts := make(map[int]int)
	for _, c := range cands {
		counts[c.distance]++
	}
	distances := make([]int, 0, len(counts))
	for d := range counts {
		distances = append(distances, d)
	}
	sort.Ints(distances)

	cum := 0
	cutoff := distances[len(distances)-1]
	for _, d := range distances {
		cum += counts[d]
		if cum >= max {
			cutoff = d
			break
		}
	}

	countBelow := 0
	for _, d := range distances {
		if d < cutoff {
			countBelow += counts[d]
		}
	}
	remaining := max - countBelow

	out := make([]candPair, 0, max)
	for _, c := range cands {
		switch {
		case c.distance < cutoff:
			out = append(out, c)
		case c.distance == cutoff && remaining > 0:
			out = append(out, c)
			remaining--
		}
	}
	return out
}

// insertCubePair turns one candPair into a cubePair record attached to
// the (possibly shared) doubleDivisor its non-base structure identifies,
// canonicalizing side order and updating the divisor's running weight.
func (m *Matrix) insertCubePair(cp candPair) {
	keys1 := m.colsToKeys(cp.nonBase1)
	keys2 := m.colsToKeys(cp.nonBase2)
	sortLits(keys1)
	sortLits(keys2)

	side1, side2, swapped := canonicalSides(keys1, keys2)
	c1, c2 := cp.r1, cp.r2
	nLits1, nLits2 := len(cp.nonBase1), len(cp.nonBase2)
	if swapped {
		c1, c2 = c2, c1
		nLits1, nLits2 = nLits2, nLits1
	}
	nBase := m.cubes[cp.r1].nLits - len(cp.nonBase1)

	dd := m.findOrCreateDouble(side1, side2)
	pair := &cubePair{C1: c1, C2: c2, NLits1: nLits1, NLits2: nLits2, NBase: nBase, next: dd.pairs, divisor: dd}
	dd.pairs = pair
	dd.pairCount++
	dd.weight += nBase - 1

	m.pairsByRow[c1] = append(m.pairsByRow[c1], pair)
	m.pairsByRow[c2] = append(m.pairsByRow[c2], pair)
}

func (m *Matrix) colsToKeys(cols []int32) []lit {
	out := make([]lit, len(cols))
	for i, c := range cols {
		out[i] = m.vars[c].key
	}
	return out
}

// buildSingleDivisors counts, for every unordered pair of variables, how
// many cube rows (anywhere in the matrix, across every node) contain both
// as literals, and records a singleDivisor for every pair reaching
// coincidence >= 2. SingleMax, if set, keeps only the SingleMax
// highest-weight divisors.
func (m *Matrix) buildSingleDivisors() {
	coincidence := make(map[uint64]int)
	for row := range m.cubes {
		cols := m.cubeLits(int32(row))
		for i := 0; i < len(cols); i++ {
			for j := i + 1; j < len(cols); j++ {
				coincidence[packPair(cols[i], cols[j])]++
			}
		}
	}

	type entry struct {
		key uint64
		cnt int
	}
	var entries []entry
	for k, cnt := range coincidence {
		if cnt >= 2 {
			entries = append(entries, entry{key: k, cnt: cnt})
		}
	}

	if m.p.SingleMax > 0 && len(entries) > m.p.SingleMax {
		sort.Slice(entries, func(i, j int) bool { return entries[i].cnt > entries[j].cnt })
		entries = entries[:m.p.SingleMax]
	}

	for _, e := range entries {
		v1 := int32(e.key >> 32)
		v2 := int32(uint32(e.key))
		m.singles[e.key] = &singleDivisor{V1: v1, V2: v2, Weight: e.cnt - 2, heapIdx: -1}
	}
}
