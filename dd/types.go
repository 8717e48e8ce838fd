// File: types.go
// Role: Core Edge/node/Manager types, sentinel errors, and the NewManager
// constructor. No algorithms live here (see ite.go, reorder.go, isop.go).
package dd

import (
	"errors"
	"sync"
	"time"
)

// Sentinel errors for dd manager operations.
var (
	// ErrTooManyVars indicates a manager was asked for more variables than
	// the implementation's hard ceiling.
	ErrTooManyVars = errors.New("dd: too many variables")

	// ErrBudgetExceeded indicates a recursive operation crossed its node
	// budget or deadline and was aborted.
	ErrBudgetExceeded = errors.New("dd: budget exceeded")

	// ErrForeignEdge indicates an edge from a different manager was passed
	// to an operation that requires same-manager edges (use Transfer).
	ErrForeignEdge = errors.New("dd: edge belongs to a different manager")
)

// maxVars bounds the variable count, matching the "bad number of
// variables" guard other BDD implementations in the corpus apply.
const maxVars = 1 << 20

// Edge is a reference to a DD node with an independent complement flag.
// idx == oneIdx && !compl is the constant 1; idx == oneIdx && compl is the
// constant 0. idx == nullIdx marks the absence of a function (used as a
// zero value for "no result yet").
type Edge struct {
	idx   int32
	compl bool
}

const (
	oneIdx  int32 = 0
	nullIdx int32 = -1
)

// Null is the distinguished "no function" edge, returned by operations
// that found nothing (e.g. an empty cube enumeration).
var Null = Edge{idx: nullIdx}

// IsNull reports whether e carries no function.
func (e Edge) IsNull() bool { return e.idx == nullIdx }

// IsConst reports whether e is the constant 0 or 1.
func (e Edge) IsConst() bool { return e.idx == oneIdx }

// IsOne reports whether e is exactly the constant 1.
func (e Edge) IsOne() bool { return e.idx == oneIdx && !e.compl }

// IsZero reports whether e is exactly the constant 0.
func (e Edge) IsZero() bool { return e.idx == oneIdx && e.compl }

// Complemented reports whether e's complement bit is set.
func (e Edge) Complemented() bool { return e.compl }

// node is one slab slot: an internal BDD node, or (when free) a free-list
// link encoded in then_.idx.
type node struct {
	level int32 // variable level; terminal uses levelTerminal
	then_ Edge  // child when the controlling variable is 1
	else_ Edge  // child when the controlling variable is 0; always regular
	ref   int32 // external reference count
	free  bool  // true if this slot is on the free list
}

// triple is the unique-table key.
type triple struct {
	level       int32
	then, else_ Edge
}

// Manager owns the node slab, unique table, computed-table cache and
// variable order for one BDD universe. Edges from one Manager must never
// be passed to another's operations directly; use Transfer.
type Manager struct {
	mu sync.RWMutex

	nodes  []node
	unique map[triple]int32

	freeHead int32 // head of the free list, nullIdx if empty
	liveCnt  int32 // number of non-free slots (excludes the constant)

	numVars    int32
	varToLevel []int32 // variable id -> level
	levelToVar []int32 // level -> variable id
	varNode    []Edge  // variable id -> projection node edge (positive phase)

	levelTerminal int32 // level assigned to the constant node

	cache     map[cacheKey]Edge
	cacheMax  int
	cacheHits int64
	cacheMiss int64

	reorderThreshold int32 // trigger periodic reorder when liveCnt doubles past this
	sinceReorder      int32

	Verbose bool // when true, ReduceHeap logs a one-line summary via the ambient status convention
}

// cacheKey identifies one computed-table entry: an operator tag plus up to
// three operand edges (unused operands are Null).
type cacheKey struct {
	op       uint8
	a, b, c  Edge
}

const (
	opAnd uint8 = iota
	opIte
	opAndAbstract
	opCofactor
	opRestrict
)

// Budget bounds a recursive operation. A zero Budget means unlimited.
type Budget struct {
	Deadline time.Time
	MaxNodes int
}

func (b Budget) unbounded() bool {
	return b.Deadline.IsZero() && b.MaxNodes <= 0
}

func (b Budget) exceeded(liveNow int32) bool {
	if !b.Deadline.IsZero() && time.Now().After(b.Deadline) {
		return true
	}
	if b.MaxNodes > 0 && int(liveNow) > b.MaxNodes {
		return true
	}
	return false
}

// NewManager allocates a manager with numVars variables at levels 0..numVars-1
// in identity order, plus the constant node at level numVars.
func NewManager(numVars int) (*Manager, error) {
	if numVars < 0 || numVars > maxVars {
		return nil, ErrTooManyVars
	}

	m := &Manager{
		nodes:         make([]node, 1, 64+numVars),
		unique:        make(map[triple]int32, 64+numVars),
		freeHead:      nullIdx,
		varToLevel:    make([]int32, 0, numVars),
		levelToVar:    make([]int32, 0, numVars),
		varNode:       make([]Edge, 0, numVars),
		levelTerminal: int32(numVars),
		cache:         make(map[cacheKey]Edge, 1024),
		cacheMax:      1 << 16,
		reorderThreshold: 512,
	}
	// slot 0 is the constant node "one"; it is never freed.
	m.nodes[0] = node{level: m.levelTerminal, then_: Null, else_: Null, ref: 1}

	for i := 0; i < numVars; i++ {
		m.allocVar()
	}

	return m, nil
}

// NumVars returns the number of variables currently allocated.
func (m *Manager) NumVars() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.varToLevel)
}

// ReadOne returns the constant-1 edge.
func (m *Manager) ReadOne() Edge { return Edge{idx: oneIdx} }

// ReadZero returns the constant-0 edge.
func (m *Manager) ReadZero() Edge { return Edge{idx: oneIdx, compl: true} }
