// File: alloc.go
// Role: Slab allocation, the free list, the unique table constructor (mk),
// and reference-count management. Grounded on the slab-of-nodes /
// free-list-via-recycled-field idiom used by the hudd BDD reference
// implementation in the example corpus.
package dd

// allocSlot pops a free slot from the free list, growing the slab if none
// is available, and returns its index.
func (m *Manager) allocSlot() int32 {
	if m.freeHead != nullIdx {
		idx := m.freeHead
		m.freeHead = m.nodes[idx].then_.idx // free slots store "next free" in then_.idx
		m.nodes[idx].free = false
		m.liveCnt++
		return idx
	}
	m.nodes = append(m.nodes, node{})
	m.liveCnt++
	return int32(len(m.nodes) - 1)
}

// freeSlot returns idx to the free list. Callers must have already removed
// any unique-table entry referencing idx.
func (m *Manager) freeSlot(idx int32) {
	m.nodes[idx] = node{free: true, then_: Edge{idx: m.freeHead}}
	m.freeHead = idx
	m.liveCnt--
}

// allocVar appends a fresh variable at the bottom of the order (spec:
// new_var allocates at the bottom), building its positive projection node.
func (m *Manager) allocVar() Edge {
	level := int32(len(m.varToLevel))
	varID := int32(len(m.varToLevel))

	// shift the terminal's level down to stay strictly below the new bottom var
	m.levelTerminal++
	m.nodes[0].level = m.levelTerminal

	one := Edge{idx: oneIdx}
	zero := Edge{idx: oneIdx, compl: true}
	proj := m.mk(level, one, zero)
	m.nodes[proj.idx].ref++ // variable projections are never garbage collected

	m.varToLevel = append(m.varToLevel, level)
	m.levelToVar = append(m.levelToVar, varID)
	m.varNode = append(m.varNode, proj)

	return proj
}

// NewVar allocates and returns a fresh variable's positive projection edge.
func (m *Manager) NewVar() Edge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocVar()
}

// IthVar returns the positive projection edge of variable i.
func (m *Manager) IthVar(i int) Edge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.varNode[i]
}

// mk is the canonical node constructor: it enforces the "else edge is
// always regular" rule, consults the unique table, and otherwise allocates
// a fresh slot. then_ == else_ collapses to that shared child (standard
// BDD reduction: the node does not depend on its controlling variable).
func (m *Manager) mk(level int32, then_, else_ Edge) Edge {
	if then_ == else_ {
		return then_
	}

	compl := false
	t, e := then_, else_
	if e.compl {
		// push the complement onto the parent edge so else stays regular
		t = Edge{idx: t.idx, compl: !t.compl}
		e = Edge{idx: e.idx, compl: false}
		compl = true
	}

	key := triple{level: level, then: t, else_: e}
	if idx, ok := m.unique[key]; ok {
		return Edge{idx: idx, compl: compl}
	}

	idx := m.allocSlot()
	m.nodes[idx] = node{level: level, then_: t, else_: e, ref: 0}
	m.unique[key] = idx

	return Edge{idx: idx, compl: compl}
}

// Ref increments f's external reference count and returns f unchanged, for
// chaining (e.g. h := mgr.Ref(mgr.And(a, b))).
func (m *Manager) Ref(f Edge) Edge {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.idx != oneIdx {
		m.nodes[f.idx].ref++
	}
	return f
}

// Deref decrements f's external reference count. It does not recursively
// free children; call CollectGarbage to sweep nodes with no references.
func (m *Manager) Deref(f Edge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.idx != oneIdx && m.nodes[f.idx].ref > 0 {
		m.nodes[f.idx].ref--
	}
}

// CollectGarbage sweeps every node whose refcount is zero and whose
// unique-table entry has no surviving parent, removing it from the unique
// table and returning its slot to the free list. It iterates to a fixed
// point so that freeing a parent can cascade to its children.
func (m *Manager) CollectGarbage() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Count internal fan-in so we know when a node has no surviving
	// referrers beyond its own (zero) external refcount.
	freed := 0
	for {
		indeg := make(map[int32]int32, len(m.nodes))
		for idx := int32(1); idx < int32(len(m.nodes)); idx++ {
			n := m.nodes[idx]
			if n.free || n.ref == 0 && indeg[idx] == 0 {
				// defer decision to the pass below; just track fan-in here
			}
			if n.free {
				continue
			}
			if n.then_.idx != oneIdx {
				indeg[n.then_.idx]++
			}
			if n.else_.idx != oneIdx {
				indeg[n.else_.idx]++
			}
		}

		progressed := false
		for idx := int32(1); idx < int32(len(m.nodes)); idx++ {
			n := m.nodes[idx]
			if n.free {
				continue
			}
			if n.ref == 0 && indeg[idx] == 0 {
				key := triple{level: n.level, then: n.then_, else_: n.else_}
				delete(m.unique, key)
				m.freeSlot(idx)
				freed++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	return freed
}

// Size returns the number of live (non-free, non-constant) nodes.
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int(m.liveCnt)
}
