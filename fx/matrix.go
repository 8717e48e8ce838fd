// File: matrix.go
// Role: The FX matrix itself — variable/cube/literal slab storage in
// intrusive per-cube/per-variable doubly-linked lists, grounded on
// matrix/builder.go's indexing discipline and dd's slab-of-nodes pattern
// reapplied to matrix entries instead of BDD nodes.
package fx

// variable is one literal polarity column: every (source object, polarity)
// pair that appears as a non-dash literal anywhere in the input covers
// gets exactly one column, shared across every node whose cover uses it —
// the same literal-identity convention the original 2-literal extractor
// used, generalized to a real column. A variable's key alone determines
// its network source and polarity (decode()), so no separate fanin table
// is needed to translate a column back to a network edge.
type variable struct {
	key     lit
	headLit int32 // head of this column's literal list, -1 if empty
}

// cube is one row: a single product term of one node's cover. dead marks
// a row fully consumed by a double-cube extraction (its literals are gone
// and it no longer belongs to its node's row list, but its slab slot is
// kept so stale cubePair back-pointers can still be found and discarded).
type cube struct {
	node    int32
	headLit int32
	nLits   int
	dead    bool
}

// literal is one matrix entry: row and column, plus the four intrusive
// list pointers (int32 slab indices; -1 is the list terminator).
type literal struct {
	row, col               int32
	nextInCube, prevInCube int32
	nextInVar, prevInVar   int32
}

// nodeEntry is one node's bookkeeping, real (from the caller's NodeCovers)
// or synthetic (created by Extract for an accepted divisor): its network
// object ID, its cover's phase, and its current cube rows in order.
type nodeEntry struct {
	id    uint64
	phase bool
	rows  []int32
}

// Matrix is the whole FX working set for one Extract pass: the
// variable/cube/literal slabs, the single- and double-cube divisor tables
// and their heaps, and the bookkeeping Extract needs to synthesize new
// nodes and Dissolve needs to re-materialize final covers.
type Matrix struct {
	vars   []variable
	varIdx map[lit]int32

	cubes []cube
	lits  []literal

	nodes   []nodeEntry
	nodeIdx map[uint64]int32

	singles map[uint64]*singleDivisor
	doubles map[uint64][]*doubleDivisor

	// pairsByRow indexes every live cubePair by each of its two rows, so a
	// row's full removal can find and invalidate every pair that named it
	// without a matrix-wide scan.
	pairsByRow map[int32][]*cubePair

	sh *singleHeap
	dh *doubleHeap

	p Params

	synSeq uint64
}

func newMatrix(p Params) *Matrix {
	return &Matrix{
		varIdx:     make(map[lit]int32),
		nodeIdx:    make(map[uint64]int32),
		singles:    make(map[uint64]*singleDivisor),
		doubles:    make(map[uint64][]*doubleDivisor),
		pairsByRow: make(map[int32][]*cubePair),
		sh:         &singleHeap{},
		dh:         &doubleHeap{},
		p:          p,
	}
}

func (m *Matrix) varFor(key lit) int32 {
	if idx, ok := m.varIdx[key]; ok {
		return idx
	}
	idx := int32(len(m.vars))
	m.vars = append(m.vars, variable{key: key, headLit: -1})
	m.varIdx[key] = idx
	return idx
}

// registerNode adds a node (real or synthetic) to the matrix and returns
// its index.
func (m *Matrix) registerNode(id uint64, phase bool) int32 {
	idx := int32(len(m.nodes))
	m.nodes = append(m.nodes, nodeEntry{id: id, phase: phase})
	m.nodeIdx[id] = idx
	return idx
}

// addCube appends a fresh row owned by nodeIdx and registers it in that
// node's row list.
func (m *Matrix) addCube(nodeIdx int32) int32 {
	idx := int32(len(m.cubes))
	m.cubes = append(m.cubes, cube{node: nodeIdx, headLit: -1})
	m.nodes[nodeIdx].rows = append(m.nodes[nodeIdx].rows, idx)
	return idx
}

// appendLiteral inserts a new matrix entry at (row, col), appending it to
// the row's cube-order list and the head of the column's variable list.
func (m *Matrix) appendLiteral(row, col int32) int32 {
	li := int32(len(m.lits))
	m.lits = append(m.lits, literal{row: row, col: col, nextInCube: -1, prevInCube: -1, nextInVar: -1, prevInVar: -1})

	c := &m.cubes[row]
	if c.headLit == -1 {
		c.headLit = li
	} else {
		tail := c.headLit
		for m.lits[tail].nextInCube != -1 {
			tail = m.lits[tail].nextInCube
		}
		m.lits[tail].nextInCube = li
		m.lits[li].prevInCube = tail
	}
	c.nLits++

	v := &m.vars[col]
	if v.headLit != -1 {
		m.lits[v.headLit].prevInVar = li
	}
	m.lits[li].nextInVar = v.headLit
	v.headLit = li

	return li
}

// removeLiteral unlinks entry li from both its cube and variable lists.
func (m *Matrix) removeLiteral(li int32) {
	l := m.lits[li]
	if l.prevInCube != -1 {
		m.lits[l.prevInCube].nextInCube = l.nextInCube
	} else {
		m.cubes[l.row].headLit = l.nextInCube
	}
	if l.nextInCube != -1 {
		m.lits[l.nextInCube].prevInCube = l.prevInCube
	}
	m.cubes[l.row].nLits--

	if l.prevInVar != -1 {
		m.lits[l.prevInVar].nextInVar = l.nextInVar
	} else {
		m.vars[l.col].headLit = l.nextInVar
	}
	if l.nextInVar != -1 {
		m.lits[l.nextInVar].prevInVar = l.prevInVar
	}
}

// cubeLits returns row's current literal columns in cube order.
func (m *Matrix) cubeLits(row int32) []int32 {
	var out []int32
	for li := m.cubes[row].headLit; li != -1; li = m.lits[li].nextInCube {
		out = append(out, m.lits[li].col)
	}
	return out
}

// findLit returns the slab index of row's literal at col, or -1.
func (m *Matrix) findLit(row, col int32) int32 {
	for li := m.cubes[row].headLit; li != -1; li = m.lits[li].nextInCube {
		if m.lits[li].col == col {
			return li
		}
	}
	return -1
}

// nextSynID allocates a synthetic node ID for a new divisor, in a range
// disjoint from real network object IDs (which start at 1 and grow by
// atomic increment): the top bit is reserved for synthetic IDs.
func (m *Matrix) nextSynID() uint64 {
	m.synSeq++
	return (uint64(1) << 63) | m.synSeq
}
