// File: types.go
// Role: Object/Network/NameManager types, sentinel errors, NetOption.
package network

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/sop"
)

// Sentinel errors for network operations.
var (
	ErrNilNetwork    = errors.New("network: nil network")
	ErrObjNotFound   = errors.New("network: object not found")
	ErrBadFanin      = errors.New("network: fanin references unknown object")
	ErrSelfFanin     = errors.New("network: object cannot be its own fanin")
	ErrHasFanouts    = errors.New("network: cannot delete object with live fanouts except by cascade")
	ErrWrongKind     = errors.New("network: operation not valid for this object kind")
)

// ObjKind classifies one Object's role in the network.
type ObjKind int

const (
	ObjPI ObjKind = iota
	ObjPO
	ObjLatchIn  // a latch's data (next-state) sink; behaves as a CO
	ObjLatchOut // a latch's state (present-state) source; behaves as a CI
	ObjLatch    // the latch itself, linking a LatchIn and a LatchOut
	ObjNode     // an internal logic node (Func carries its behavior)
	ObjBox      // an opaque black box (no Func; boundary only)
	ObjAigAnd   // a structurally-hashed two-input AND (AIG)
)

// NetKind classifies what Func payload Nodes in this Network carry.
type NetKind int

const (
	KindAIG NetKind = iota
	KindLogicSOP
	KindLogicBDD
	KindLogicAIG
	KindLogicMapped
	KindNetlist
)

// FuncKind tags which field of FuncHandle is meaningful.
type FuncKind int

const (
	FuncNone FuncKind = iota
	FuncSop
	FuncBdd
	FuncAig
	FuncGate
)

// FuncHandle is a tagged union over a node's behavior representation.
type FuncHandle struct {
	Kind FuncKind
	Sop  *sop.Cover
	Bdd  dd.Edge
	Aig  uint64
	Gate string
}

// FaninEdge is one incoming connection, src -> (this object), optionally
// complemented.
type FaninEdge struct {
	Src   uint64
	Compl bool
}

// Object is one node of the network: a PI/PO/latch pin/logic node/box/AIG
// node, holding its fanins, its fanout set, and (for logic nodes) its
// Func payload.
type Object struct {
	ID       uint64
	Kind     ObjKind
	Level    int // topological level, maintained by topo.Levelize
	Fanins   []FaninEdge
	Fanouts  map[uint64]struct{}
	Func     FuncHandle
	Scratch  uint64 // spare traversal epoch marker; topo keeps its visited sets in maps and does not use it
	LatchPin uint64 // for ObjLatchIn/ObjLatchOut: the paired ObjLatch's ID
}

// NameManager is a bidirectional name<->id registry, generalizing core's
// Vertex.ID-is-the-name convention to numeric object IDs with optional
// human-readable names.
type NameManager struct {
	mu       sync.RWMutex
	idToName map[uint64]string
	nameToID map[string]uint64
}

// NewNameManager returns an empty NameManager.
func NewNameManager() *NameManager {
	return &NameManager{idToName: make(map[uint64]string), nameToID: make(map[string]uint64)}
}

// Set assigns name to id, overwriting any prior name for id.
func (nm *NameManager) Set(id uint64, name string) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	if old, ok := nm.idToName[id]; ok {
		delete(nm.nameToID, old)
	}
	nm.idToName[id] = name
	nm.nameToID[name] = id
}

// Name returns id's name, if any.
func (nm *NameManager) Name(id uint64) (string, bool) {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	n, ok := nm.idToName[id]
	return n, ok
}

// Lookup returns the id registered under name, if any.
func (nm *NameManager) Lookup(name string) (uint64, bool) {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	id, ok := nm.nameToID[name]
	return id, ok
}

// NetOption configures a Network at construction time.
type NetOption func(*Network)

// WithKind sets the network's logic representation kind.
func WithKind(k NetKind) NetOption {
	return func(n *Network) { n.Kind = k }
}

// WithDDManager attaches a shared BDD manager (required for KindLogicBDD
// networks; optional otherwise).
func WithDDManager(mgr *dd.Manager) NetOption {
	return func(n *Network) { n.DD = mgr }
}

// Network is the boolean-network object model: objects linked by
// bidirectional fanin/fanout edges, with ordered PI/PO/CI/CO/Box catalogs.
//
// muObj guards objects and the nextObjID counter; muFanIO guards the
// catalog slices (PIs/POs/CIs/COs/Boxes) and every Fanins/Fanouts mutation
// — the same two-lock split as core.Graph's muVert/muEdgeAdj, and the same
// rule that a method never holds both locks at once.
type Network struct {
	muObj   sync.RWMutex
	muFanIO sync.RWMutex

	objects map[uint64]*Object

	PIs, POs []uint64
	CIs, COs []uint64 // combinational inputs/outputs, including latch pins
	Boxes    []uint64

	Kind  NetKind
	DD    *dd.Manager
	Names *NameManager

	nextObjID   uint64 // atomic
	epoch       uint64 // atomic; owned by topo's traversal-epoch convention
	constZeroID uint64 // lazily created by FixNondrivenNets, 0 until first use
}

// NewNetwork constructs an empty Network, applying opts left to right.
func NewNetwork(opts ...NetOption) *Network {
	n := &Network{
		objects: make(map[uint64]*Object),
		Names:   NewNameManager(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// nextID atomically allocates a fresh object ID (1-based; 0 is reserved as
// "no object").
func (n *Network) nextID() uint64 {
	return atomic.AddUint64(&n.nextObjID, 1)
}

// NextEpoch atomically allocates a fresh traversal epoch, for use with
// Object.Scratch-based visited marking. No traversal in this module calls
// it; topo tracks visited objects in maps.
func (n *Network) NextEpoch() uint64 {
	return atomic.AddUint64(&n.epoch, 1)
}

// Object returns obj's current snapshot (not a live pointer contract:
// callers should treat the returned *Object as read-only, matching core's
// Vertex-by-pointer convention).
func (n *Network) Object(id uint64) (*Object, bool) {
	n.muObj.RLock()
	defer n.muObj.RUnlock()
	o, ok := n.objects[id]
	return o, ok
}

// AllIDs returns every object ID currently in the network, in ascending
// order (ascending rather than map order, so traversal callers get a
// deterministic starting frontier).
func (n *Network) AllIDs() []uint64 {
	n.muObj.RLock()
	defer n.muObj.RUnlock()
	ids := make([]uint64, 0, len(n.objects))
	for id := range n.objects {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// NumObjects returns the number of objects currently in the network.
func (n *Network) NumObjects() int {
	n.muObj.RLock()
	defer n.muObj.RUnlock()
	return len(n.objects)
}
