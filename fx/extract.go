// File: extract.go
// Role: The Extract main loop (spec §4.6 steps 1-5) and the incremental
// matrix maintenance it drives: every literal add/remove updates the
// single-cube divisor table and heap on the spot (onLiteralAdded/Removed);
// every row's full removal walks pairsByRow to invalidate or re-weight
// every double-cube divisor that named it. Grounded on prim_kruskal's
// validate -> collect -> sort-by-weight -> greedily-accept shape,
// generalized from Kruskal's one-shot sort.Slice to an incrementally
// re-heapified priority queue, since FX (unlike MST) keeps choosing after
// the matrix it is choosing from has changed.
package fx

import "container/heap"

// Extract runs m's main loop: repeatedly pick the best eligible divisor
// (by p.OnlySingle/OnlyDouble/the default combined rule), stop once the
// best candidate's weight fails p.WeightMin (honoring p.UseZero) or
// p.NodesExt extractions have been made, and for every accepted divisor
// create the node(s) it needs and rewrite every cube it touches. Returns
// the number of divisors extracted.
func Extract(m *Matrix, p Params) int {
	extracted := 0
	for p.NodesExt <= 0 || extracted < p.NodesExt {
		sd := bestEligibleSingle(m, p)
		dv := bestEligibleDouble(m, p)

		var useSingle bool
		switch {
		case p.OnlySingle:
			if sd == nil {
				return extracted
			}
			useSingle = true
		case p.OnlyDouble:
			if dv == nil {
				return extracted
			}
			useSingle = false
		case sd == nil && dv == nil:
			return extracted
		case sd == nil:
			useSingle = false
		case dv == nil:
			useSingle = true
		default:
			useSingle = sd.Weight >= dv.weight
		}

		var weight int
		if useSingle {
			weight = sd.Weight
		} else {
			weight = dv.weight
		}
		if shouldStop(weight, p) {
			return extracted
		}

		if p.UseComplement && !useSingle {
			if combined, ok := tryComplementPair(m, dv); ok {
				m.removeDouble(dv)
				m.removeSingle(combined)
				m.extractDouble(dv)
				m.extractSingle(combined)
				extracted++
				continue
			}
		}

		if useSingle {
			m.removeSingle(sd)
			m.extractSingle(sd)
		} else {
			m.removeDouble(dv)
			m.extractDouble(dv)
		}
		extracted++
	}
	return extracted
}

// shouldStop reports whether a candidate of this weight ends the loop: a
// weight at or below WeightMin stops it, except weight == WeightMin == 0
// with UseZero set, which is accepted per spec §4.6 step 3.
func shouldStop(weight int, p Params) bool {
	if weight < p.WeightMin {
		return true
	}
	if weight == p.WeightMin {
		return !(p.WeightMin == 0 && p.UseZero)
	}
	return false
}

// bestEligibleSingle scans the single heap's current contents (not just
// its root) for the highest-weight entry that clears p.LitCountMax.
func bestEligibleSingle(m *Matrix, p Params) *singleDivisor {
	var best *singleDivisor
	for _, sd := range *m.sh {
		if p.LitCountMax > 0 && 2 > p.LitCountMax {
			continue
		}
		if best == nil || sd.Weight > best.Weight {
			best = sd
		}
	}
	return best
}

// bestEligibleDouble scans the double heap for the highest-weight entry
// that clears p.LitCountMax and, if p.CanonDivs is set, is OR/XOR
// canonical (exactly one literal per side).
func bestEligibleDouble(m *Matrix, p Params) *doubleDivisor {
	var best *doubleDivisor
	for _, dv := range *m.dh {
		total := len(dv.nonBase1) + len(dv.nonBase2)
		if p.LitCountMax > 0 && total > p.LitCountMax {
			continue
		}
		if p.CanonDivs && (len(dv.nonBase1) != 1 || len(dv.nonBase2) != 1) {
			continue
		}
		if best == nil || dv.weight > best.weight {
			best = dv
		}
	}
	return best
}

// tryComplementPair looks for a single-cube divisor over the complement
// polarities of dv's two (single-literal) sides, among the single heap's
// top-20 entries (spec §9 open question (b)'s lookahead cap). If found,
// the pair can be extracted together for a combined saving larger than
// either alone.
func tryComplementPair(m *Matrix, dv *doubleDivisor) (*singleDivisor, bool) {
	if len(dv.nonBase1) != 1 || len(dv.nonBase2) != 1 {
		return nil, false
	}
	src1, neg1 := dv.nonBase1[0].decode()
	src2, neg2 := dv.nonBase2[0].decode()
	compCol1, ok1 := m.varIdx[encodeLit(src1, !neg1)]
	compCol2, ok2 := m.varIdx[encodeLit(src2, !neg2)]
	if !ok1 || !ok2 {
		return nil, false
	}
	want := packPair(compCol1, compCol2)

	lookahead := 20
	for i, sd := range *m.sh {
		if i >= lookahead {
			break
		}
		if packPair(sd.V1, sd.V2) == want {
			return sd, true
		}
	}
	return nil, false
}

// extractSingle creates a new AND node over sd's two variables and
// rewrites every row that currently carries both literals to reference it
// instead.
func (m *Matrix) extractSingle(sd *singleDivisor) uint64 {
	id := m.nextSynID()
	nodeIdx := m.registerNode(id, true)
	row := m.addCube(nodeIdx)
	m.appendLiteral(row, sd.V1)
	m.appendLiteral(row, sd.V2)

	newCol := m.varFor(encodeLit(id, false))

	var touched []int32
	for li := m.vars[sd.V1].headLit; li != -1; li = m.lits[li].nextInVar {
		r := m.lits[li].row
		if r != row && m.findLit(r, sd.V2) != -1 {
			touched = append(touched, r)
		}
	}
	for _, r := range touched {
		m.removeLiteralFull(r, sd.V1)
		m.removeLiteralFull(r, sd.V2)
		m.appendLiteralMaintained(r, newCol)
	}
	return id
}

// extractDouble creates dv's own 2-cube node (side1 OR side2) and, for
// every cubePair that realizes dv, merges its two rows into one (common
// base literals plus a single reference to the new node).
func (m *Matrix) extractDouble(dv *doubleDivisor) uint64 {
	id := m.nextSynID()
	nodeIdx := m.registerNode(id, true)

	row1 := m.addCube(nodeIdx)
	for _, k := range dv.nonBase1 {
		m.appendLiteral(row1, m.varFor(k))
	}
	row2 := m.addCube(nodeIdx)
	for _, k := range dv.nonBase2 {
		m.appendLiteral(row2, m.varFor(k))
	}

	newCol := m.varFor(encodeLit(id, false))

	var pairs []*cubePair
	for p := dv.pairs; p != nil; p = p.next {
		pairs = append(pairs, p)
	}
	for _, p := range pairs {
		m.mergePairIntoDivisor(p, newCol)
	}
	return id
}

// mergePairIntoDivisor replaces cp's two (still-live) rows with one new
// row over their current common literals plus newCol.
func (m *Matrix) mergePairIntoDivisor(cp *cubePair, newCol int32) {
	if cp.divisor == nil {
		return
	}
	r1, r2 := cp.C1, cp.C2
	if m.cubes[r1].dead || m.cubes[r2].dead {
		return
	}

	in2 := make(map[int32]bool)
	for _, c := range m.cubeLits(r2) {
		in2[c] = true
	}
	var base []int32
	for _, c := range m.cubeLits(r1) {
		if in2[c] {
			base = append(base, c)
		}
	}

	node := m.cubes[r1].node
	newRow := m.addCube(node)
	for _, c := range base {
		m.appendLiteralMaintained(newRow, c)
	}
	m.appendLiteralMaintained(newRow, newCol)

	m.deleteRow(r1)
	m.deleteRow(r2)
}

// deleteRow removes every literal in row (maintaining single-divisor
// bookkeeping as it goes), detaches row from its node's row list, marks it
// dead, and invalidates every cubePair that named it.
func (m *Matrix) deleteRow(row int32) {
	for li := m.cubes[row].headLit; li != -1; {
		next := m.lits[li].nextInCube
		col := m.lits[li].col
		m.onLiteralRemoved(row, col)
		m.removeLiteral(li)
		li = next
	}
	m.cubes[row].dead = true

	nodeIdx := m.cubes[row].node
	rows := m.nodes[nodeIdx].rows
	for i, r := range rows {
		if r == row {
			m.nodes[nodeIdx].rows = append(rows[:i], rows[i+1:]...)
			break
		}
	}

	for _, cp := range m.pairsByRow[row] {
		m.invalidatePair(cp)
	}
	delete(m.pairsByRow, row)
}

// invalidatePair drops cp from its owning doubleDivisor, decrementing
// that divisor's weight by cp's own contribution and removing the
// divisor entirely once no pair realizes it anymore.
func (m *Matrix) invalidatePair(cp *cubePair) {
	dv := cp.divisor
	if dv == nil {
		return
	}
	if dv.pairs == cp {
		dv.pairs = cp.next
	} else {
		for n := dv.pairs; n != nil; n = n.next {
			if n.next == cp {
				n.next = cp.next
				break
			}
		}
	}
	dv.pairCount--
	dv.weight -= cp.NBase - 1
	cp.divisor = nil

	if dv.pairCount <= 0 {
		m.removeDouble(dv)
	} else {
		m.fixDouble(dv)
	}
}

// removeLiteralFull maintains single-divisor bookkeeping for (row, col)
// before physically unlinking it.
func (m *Matrix) removeLiteralFull(row, col int32) {
	li := m.findLit(row, col)
	if li == -1 {
		return
	}
	m.onLiteralRemoved(row, col)
	m.removeLiteral(li)
}

// appendLiteralMaintained inserts (row, col) and then updates
// single-divisor bookkeeping for every other literal now sharing row.
func (m *Matrix) appendLiteralMaintained(row, col int32) {
	m.appendLiteral(row, col)
	m.onLiteralAdded(row, col)
}

// onLiteralRemoved decrements (and, below threshold, drops) the
// singleDivisor for (col, other) for every other literal still in row —
// called before col's own literal entry is unlinked, so cubeLits(row)
// still includes it.
func (m *Matrix) onLiteralRemoved(row, col int32) {
	for _, other := range m.cubeLits(row) {
		if other == col {
			continue
		}
		key := packPair(col, other)
		sd, ok := m.singles[key]
		if !ok {
			continue
		}
		sd.Weight--
		if sd.Weight < 0 {
			m.removeSingle(sd)
		} else {
			m.fixSingle(sd)
		}
	}
}

// onLiteralAdded increments (creating if necessary) the singleDivisor for
// (col, other) for every other literal already in row, pushing it onto
// the heap the moment its weight reaches 0 (coincidence 2).
func (m *Matrix) onLiteralAdded(row, col int32) {
	for _, other := range m.cubeLits(row) {
		if other == col {
			continue
		}
		key := packPair(col, other)
		sd, ok := m.singles[key]
		if !ok {
			sd = &singleDivisor{V1: col, V2: other, Weight: -2, heapIdx: -1}
			m.singles[key] = sd
		}
		sd.Weight++
		if sd.Weight >= 0 {
			if sd.heapIdx == -1 {
				heap.Push(m.sh, sd)
			} else {
				m.fixSingle(sd)
			}
		}
	}
}
