package cascade

// positionsOf returns, for each id in ids, its position within pool, or
// nil if any id is not found (the caller treats that as a malformed
// bound set referencing a variable no longer live).
func positionsOf(pool, ids []int) []int {
	pos := make([]int, len(ids))
	for i, id := range ids {
		found := -1
		for p, pid := range pool {
			if pid == id {
				found = p
				break
			}
		}
		if found < 0 {
			return nil
		}
		pos[i] = found
	}
	return pos
}

// subtractIDs returns a (order-preserving) minus b.
func subtractIDs(a, b []int) []int {
	skip := make(map[int]bool, len(b))
	for _, id := range b {
		skip[id] = true
	}
	out := make([]int, 0, len(a))
	for _, id := range a {
		if !skip[id] {
			out = append(out, id)
		}
	}
	return out
}

// bitsAt reads, from minterm index idx, the bits at the given bit
// positions, packing them into a small integer in the order positions
// are listed (position i contributes bit i of the result).
func bitsAt(idx int, positions []int) int {
	code := 0
	for i, p := range positions {
		if (idx>>uint(p))&1 == 1 {
			code |= 1 << uint(i)
		}
	}
	return code
}

// columnsForBoundSet cofactors t over every assignment of the variables
// at elimPos, bucketing the 2^len(elimPos) resulting sub-tables (each
// over the remaining positions) by content. It returns the distinct
// columns (in order of first appearance, the same convention ashenhurst
// uses) and a map from elimination-assignment code to the index of its
// column, plus the variable IDs surviving at the remaining positions.
//
// This is a single O(2^len(t.VarIDs)) pass: every original minterm is
// visited once and routed into the (elimCode)-th bucket's bit at
// position remainCode, rather than re-scanning the table once per
// elimination assignment.
func columnsForBoundSet(t *TruthTable, elimPos []int) (columns []*TruthTable, codeOf map[int]int, remainIDs []int) {
	nVars := len(t.VarIDs)
	remainPos := make([]int, 0, nVars-len(elimPos))
	skip := make(map[int]bool, len(elimPos))
	for _, p := range elimPos {
		skip[p] = true
	}
	for p := range t.VarIDs {
		if !skip[p] {
			remainPos = append(remainPos, p)
		}
	}
	remainIDs = make([]int, len(remainPos))
	for i, p := range remainPos {
		remainIDs[i] = t.VarIDs[p]
	}

	nElim := len(elimPos)
	buckets := make([]*TruthTable, 1<<uint(nElim))
	total := 1
	if nVars > 0 {
		total = 1 << uint(nVars)
	}
	for idx := 0; idx < total; idx++ {
		ecode := bitsAt(idx, elimPos)
		rcode := bitsAt(idx, remainPos)
		b := buckets[ecode]
		if b == nil {
			b = NewTruthTable(remainIDs)
			buckets[ecode] = b
		}
		b.SetBit(rcode, t.Bit(idx))
	}

	codeOf = make(map[int]int, len(buckets))
	for ecode, b := range buckets {
		if b == nil {
			b = NewTruthTable(remainIDs) // constant-zero column for an elim code never reached (nVars==0 edge case aside, always reached)
		}
		found := -1
		for ci, c := range columns {
			if c.Equal(b) {
				found = ci
				break
			}
		}
		if found < 0 {
			columns = append(columns, b)
			found = len(columns) - 1
		}
		codeOf[ecode] = found
	}
	return columns, codeOf, remainIDs
}

// bitsFor returns the minimum number of bits needed to represent mu
// distinct codes (0 and 1 both need one bit, matching a single-valued
// rail being meaningful).
func bitsFor(mu int) int {
	bits := 0
	for (1 << uint(bits)) < mu {
		bits++
	}
	if bits == 0 {
		bits = 1
	}
	return bits
}
