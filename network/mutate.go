// File: mutate.go
// Role: Object construction and fanin/fanout maintenance, generalizing
// core's AddVertex/AddEdge/RemoveVertex to the Object/FaninEdge model.
package network

// AddPI creates a primary input, names it (if name != ""), and appends it
// to PIs and CIs.
func (n *Network) AddPI(name string) uint64 {
	id := n.newObject(ObjPI)
	n.muFanIO.Lock()
	n.PIs = append(n.PIs, id)
	n.CIs = append(n.CIs, id)
	n.muFanIO.Unlock()
	n.maybeName(id, name)
	return id
}

// AddPO creates a primary output driven by (driver, compl), names it (if
// name != ""), and appends it to POs and COs. Returns ErrObjNotFound if
// driver does not exist.
func (n *Network) AddPO(name string, driver uint64, compl bool) (uint64, error) {
	if _, ok := n.Object(driver); !ok {
		return 0, ErrObjNotFound
	}
	id := n.newObject(ObjPO)
	if err := n.AddFanin(id, driver, compl); err != nil {
		return 0, err
	}
	n.muFanIO.Lock()
	n.POs = append(n.POs, id)
	n.COs = append(n.COs, id)
	n.muFanIO.Unlock()
	n.maybeName(id, name)
	return id, nil
}

// AddLatch creates a latch: a LatchOut (present-state source, behaves as a
// CI) and a LatchIn (next-state sink, behaves as a CO), linked by a Latch
// object. Returns (latchID, inID, outID).
func (n *Network) AddLatch(name string) (latchID, inID, outID uint64) {
	latchID = n.newObject(ObjLatch)
	inID = n.newObject(ObjLatchIn)
	outID = n.newObject(ObjLatchOut)

	n.muObj.Lock()
	n.objects[inID].LatchPin = latchID
	n.objects[outID].LatchPin = latchID
	n.muObj.Unlock()

	n.muFanIO.Lock()
	n.COs = append(n.COs, inID)
	n.CIs = append(n.CIs, outID)
	n.muFanIO.Unlock()

	n.maybeName(latchID, name)
	return latchID, inID, outID
}

// AddNode creates an internal logic node carrying fn.
func (n *Network) AddNode(fn FuncHandle) uint64 {
	id := n.newObject(ObjNode)
	n.muObj.Lock()
	n.objects[id].Func = fn
	n.muObj.Unlock()
	return id
}

// AddBox creates an opaque black box and appends it to Boxes.
func (n *Network) AddBox(name string) uint64 {
	id := n.newObject(ObjBox)
	n.muFanIO.Lock()
	n.Boxes = append(n.Boxes, id)
	n.muFanIO.Unlock()
	n.maybeName(id, name)
	return id
}

// AddAigAnd creates a structurally-hashed two-input AND node over
// (a,compl a) and (b, compl b).
func (n *Network) AddAigAnd(a uint64, aCompl bool, b uint64, bCompl bool) (uint64, error) {
	id := n.newObject(ObjAigAnd)
	if err := n.AddFanin(id, a, aCompl); err != nil {
		return 0, err
	}
	if err := n.AddFanin(id, b, bCompl); err != nil {
		return 0, err
	}
	return id, nil
}

// AddFanin appends src (possibly complemented) as a fanin of dst, and
// registers dst in src's fanout set. Returns ErrObjNotFound if either
// object is missing, ErrSelfFanin if dst == src.
func (n *Network) AddFanin(dst, src uint64, compl bool) error {
	if dst == src {
		return ErrSelfFanin
	}
	n.muObj.Lock()
	defer n.muObj.Unlock()

	d, ok := n.objects[dst]
	if !ok {
		return ErrObjNotFound
	}
	s, ok := n.objects[src]
	if !ok {
		return ErrObjNotFound
	}

	d.Fanins = append(d.Fanins, FaninEdge{Src: src, Compl: compl})
	if s.Fanouts == nil {
		s.Fanouts = make(map[uint64]struct{})
	}
	s.Fanouts[dst] = struct{}{}

	return nil
}

// ReplaceNode rewires an existing ObjNode wholesale: fn becomes its new
// Func payload and fanins becomes its new fanin list, with fanout
// bookkeeping detached from every old fanin and attached to every new one.
// Returns ErrWrongKind if id is not an ObjNode.
func (n *Network) ReplaceNode(id uint64, fn FuncHandle, fanins []FaninEdge) error {
	n.muObj.Lock()
	defer n.muObj.Unlock()

	obj, ok := n.objects[id]
	if !ok {
		return ErrObjNotFound
	}
	if obj.Kind != ObjNode {
		return ErrWrongKind
	}

	for _, fe := range obj.Fanins {
		if src, ok := n.objects[fe.Src]; ok {
			delete(src.Fanouts, id)
		}
	}

	newFanins := make([]FaninEdge, len(fanins))
	copy(newFanins, fanins)
	for _, fe := range newFanins {
		src, ok := n.objects[fe.Src]
		if !ok {
			return ErrBadFanin
		}
		if src.Fanouts == nil {
			src.Fanouts = make(map[uint64]struct{})
		}
		src.Fanouts[id] = struct{}{}
	}

	obj.Fanins = newFanins
	obj.Func = fn
	return nil
}

// SetFanin rewires dst's idx'th fanin to (src, compl), updating fanout
// bookkeeping on both the old and new source. Returns ErrObjNotFound if dst
// or src does not exist, ErrBadFanin if idx is out of range.
func (n *Network) SetFanin(dst uint64, idx int, src uint64, compl bool) error {
	n.muObj.Lock()
	defer n.muObj.Unlock()

	d, ok := n.objects[dst]
	if !ok {
		return ErrObjNotFound
	}
	if idx < 0 || idx >= len(d.Fanins) {
		return ErrBadFanin
	}
	s, ok := n.objects[src]
	if !ok {
		return ErrObjNotFound
	}

	old := d.Fanins[idx].Src
	if oldObj, ok := n.objects[old]; ok && old != src {
		delete(oldObj.Fanouts, dst)
	}
	if s.Fanouts == nil {
		s.Fanouts = make(map[uint64]struct{})
	}
	s.Fanouts[dst] = struct{}{}
	d.Fanins[idx] = FaninEdge{Src: src, Compl: compl}
	return nil
}

// DeleteObj removes id from the network. If cascade is false, it fails
// with ErrHasFanouts when id still has live fanouts. If cascade is true, it
// also recursively deletes every fanin of id that becomes fanout-free as a
// result (mirroring core.Graph.RemoveVertex's mirror-edge cleanup,
// generalized to a multi-hop cascade since fanins here can chain
// arbitrarily deep instead of core's single mirror edge).
func (n *Network) DeleteObj(id uint64, cascade bool) error {
	n.muObj.Lock()
	defer n.muObj.Unlock()

	return n.deleteObjLocked(id, cascade)
}

func (n *Network) deleteObjLocked(id uint64, cascade bool) error {
	obj, ok := n.objects[id]
	if !ok {
		return ErrObjNotFound
	}
	if len(obj.Fanouts) > 0 {
		// A node with live consumers can never be deleted, cascade or not;
		// cascade only controls whether deleting it then chases its own
		// fanins that become orphaned as a result.
		return ErrHasFanouts
	}

	fanins := obj.Fanins
	delete(n.objects, id)
	n.removeFromCatalogsLocked(id)

	for _, fe := range fanins {
		src, ok := n.objects[fe.Src]
		if !ok {
			continue
		}
		delete(src.Fanouts, id)
		if cascade && len(src.Fanouts) == 0 && src.Kind != ObjPI && src.Kind != ObjLatchOut {
			_ = n.deleteObjLocked(fe.Src, cascade)
		}
	}

	return nil
}

func (n *Network) removeFromCatalogsLocked(id uint64) {
	n.muFanIO.Lock()
	defer n.muFanIO.Unlock()
	n.PIs = removeID(n.PIs, id)
	n.POs = removeID(n.POs, id)
	n.CIs = removeID(n.CIs, id)
	n.COs = removeID(n.COs, id)
	n.Boxes = removeID(n.Boxes, id)
}

func removeID(ids []uint64, id uint64) []uint64 {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func (n *Network) newObject(kind ObjKind) uint64 {
	id := n.nextID()
	n.muObj.Lock()
	n.objects[id] = &Object{ID: id, Kind: kind, Fanouts: make(map[uint64]struct{})}
	n.muObj.Unlock()
	return id
}

func (n *Network) maybeName(id uint64, name string) {
	if name != "" {
		n.Names.Set(id, name)
	}
}
