package cascade

// Synthesize decomposes tt into a chain of k-input LUTs connected by at
// most rails carrier signals per stage. When guide is non-empty it fixes
// the bound/shared variable set for each stage (see ParseGuide); if guide
// stages run out before the variable pool shrinks to k or fewer entries,
// automatic bound-set selection takes over for the remainder. Returns
// (nil, false) if no decomposition achieves column multiplicity <=
// 2^rails at some stage, or if an automatically chosen stage would need
// as many rails as it has fresh bound variables (the pool would not shrink).
//
// Shared variables (the uppercase letters of a guide stage) are treated
// as pass-through residual inputs: a stage's column dedup only cofactors
// over the stage's non-shared ("fresh") bound variables, never the
// shared ones. The real cascade synthesizer instead re-derives columns
// independently within each shared-value block (a finer, per-block
// local numbering); this implementation intentionally does not
// replicate that — see DESIGN.md.
func Synthesize(tt *TruthTable, k, rails int, guide string) (*Cascade, bool) {
	if tt == nil {
		return nil, false
	}
	if k <= 0 {
		return nil, false
	}
	if rails < 0 {
		return nil, false
	}
	stages, err := ParseGuide(guide)
	if err != nil {
		return nil, false
	}

	cur := tt.Clone()
	pool := make([]int, len(cur.VarIDs))
	copy(pool, cur.VarIDs)

	cas := &Cascade{NVarsOrig: len(tt.VarIDs)}
	nextWireID := len(tt.VarIDs)
	stageIdx := 0

	for len(pool) > k {
		var bound, shared []int
		if stageIdx < len(stages) {
			bound = stages[stageIdx].Bound
			shared = stages[stageIdx].Shared
		} else {
			bound, shared = autoChooseBoundSet(cur, pool, k, rails)
		}
		stageIdx++

		if len(bound) == 0 || len(bound) > k {
			return nil, false
		}
		fresh := subtractIDs(bound, shared)
		if len(fresh) == 0 {
			return nil, false
		}
		elimPos := positionsOf(pool, fresh)
		if elimPos == nil {
			return nil, false
		}
		columns, codeOf, remainIDs := columnsForBoundSet(cur, elimPos)
		mu := len(columns)
		if mu > (1 << uint(rails)) {
			return nil, false
		}
		railBits := bitsFor(mu)
		if stageIdx > len(stages) && railBits >= len(fresh) {
			// an automatic stage that does not shrink the pool never ends
			return nil, false
		}

		// Build one rail LUT per output bit, each a function of `fresh`
		// alone: bit e of the code for a given fresh-assignment.
		railIDs := make([]int, railBits)
		for e := 0; e < railBits; e++ {
			railTab := NewTruthTable(fresh)
			total := 1 << uint(len(fresh))
			for fa := 0; fa < total; fa++ {
				code := codeOf[fa]
				bit := (code>>uint(e))&1 == 1
				railTab.SetBit(fa, bit)
			}
			out := nextWireID
			nextWireID++
			cas.Luts = append(cas.Luts, LutBlock{Fanins: append([]int(nil), fresh...), Out: out, Table: railTab})
			railIDs[e] = out
		}

		// Build the residual table over remainIDs ++ railIDs: its value at
		// (remainAssignment, code) is columns[code].Bit(remainAssignment).
		newPool := append(append([]int(nil), remainIDs...), railIDs...)
		nextTab := NewTruthTable(newPool)
		nRemain := len(remainIDs)
		for code, col := range columns {
			for ra := 0; ra < (1 << uint(nRemain)); ra++ {
				if col.Bit(ra) {
					idx := ra | (code << uint(nRemain))
					nextTab.SetBit(idx, true)
				}
			}
		}

		cur = nextTab
		pool = newPool
	}

	// Final stage: one LUT directly over whatever remains.
	out := nextWireID
	cas.Luts = append(cas.Luts, LutBlock{Fanins: append([]int(nil), pool...), Out: out, Table: cur})

	return cas, true
}

// autoChooseBoundSet picks (without guide input) a k-sized fresh bound
// set from pool, preferring the trailing k entries and falling back to
// a bounded local search (single-element swaps) to reduce column
// multiplicity under the rails cap, the same greedy-then-improve shape
// ashenhurst.go uses for choosing a bound set over a BDD's variables.
func autoChooseBoundSet(cur *TruthTable, pool []int, k, rails int) (bound, shared []int) {
	n := len(pool)
	cand := append([]int(nil), pool[n-k:]...)
	best := cand
	bestMu := muOf(cur, pool, best)

	capMu := 1 << uint(rails)
	const maxSwaps = 64
	swaps := 0
	for bestMu > capMu && swaps < maxSwaps {
		improved := false
		outside := subtractIDs(pool, best)
		for bi := 0; bi < len(best) && !improved; bi++ {
			for oi := 0; oi < len(outside) && !improved; oi++ {
				trial := append([]int(nil), best...)
				trial[bi] = outside[oi]
				mu := muOf(cur, pool, trial)
				swaps++
				if mu < bestMu {
					best = trial
					bestMu = mu
					improved = true
				}
				if swaps >= maxSwaps {
					break
				}
			}
		}
		if !improved {
			break
		}
	}
	return best, nil
}

func muOf(cur *TruthTable, pool, candidate []int) int {
	pos := positionsOf(pool, candidate)
	if pos == nil {
		return 1 << 30
	}
	columns, _, _ := columnsForBoundSet(cur, pos)
	return len(columns)
}
