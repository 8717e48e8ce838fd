// File: topo.go
// Role: TopoOrder (topological sort with cycle detection) and Levelize
// (topological level assignment), both adapted from dfs.TopologicalSort's
// white/gray/black DFS.
package topo

import (
	"context"
	"errors"
	"fmt"

	"github.com/vlsitools/lsynth/network"
)

// Visitation states, matching dfs's White/Gray/Black convention.
const (
	White = 0
	Gray  = 1
	Black = 2
)

// ErrNilNetwork indicates a nil *network.Network was passed in.
var ErrNilNetwork = errors.New("topo: nil network")

// ErrCycleDetected indicates the network's fanin graph is not a DAG.
var ErrCycleDetected = errors.New("topo: cycle detected")

// Option configures TopoOrder/Levelize.
type Option func(*options)

type options struct {
	ctx context.Context
}

func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithCancelContext allows a long traversal over a large network to be
// cancelled. A nil context has no effect.
func WithCancelContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

type sorter struct {
	n     *network.Network
	opts  options
	state map[uint64]int
	order []uint64
}

// TopoOrder returns every object ID in a network in dependency order: every
// fanin appears before the objects that read it. Returns ErrCycleDetected
// if the fanin graph contains a cycle.
func TopoOrder(n *network.Network, opts ...Option) ([]uint64, error) {
	if n == nil {
		return nil, ErrNilNetwork
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ids := n.AllIDs()
	s := &sorter{
		n:     n,
		opts:  o,
		state: make(map[uint64]int, len(ids)),
		order: make([]uint64, 0, len(ids)),
	}

	for _, id := range ids {
		if s.state[id] == White {
			if err := s.visit(id); err != nil {
				return nil, err
			}
		}
	}

	return s.order, nil
}

func (s *sorter) visit(id uint64) error {
	select {
	case <-s.opts.ctx.Done():
		return s.opts.ctx.Err()
	default:
	}

	if s.state[id] == Gray {
		return fmt.Errorf("%w: at object %d", ErrCycleDetected, id)
	}
	if s.state[id] == Black {
		return nil
	}
	s.state[id] = Gray

	obj, ok := s.n.Object(id)
	if !ok {
		return fmt.Errorf("topo: object %d vanished mid-traversal", id)
	}
	for _, fe := range obj.Fanins {
		if err := s.visit(fe.Src); err != nil {
			return err
		}
	}

	s.state[id] = Black
	s.order = append(s.order, id)

	return nil
}

// DFS walks every object reachable from roots by following Fanins, calling
// visit once per object in post-order (dependencies before dependents).
// Stops and returns the first error visit returns.
func DFS(n *network.Network, roots []uint64, visit func(id uint64) error) error {
	if n == nil {
		return ErrNilNetwork
	}
	seen := make(map[uint64]bool)
	var walk func(uint64) error
	walk = func(id uint64) error {
		if seen[id] {
			return nil
		}
		seen[id] = true
		obj, ok := n.Object(id)
		if !ok {
			return nil
		}
		for _, fe := range obj.Fanins {
			if err := walk(fe.Src); err != nil {
				return err
			}
		}
		return visit(id)
	}
	for _, r := range roots {
		if err := walk(r); err != nil {
			return err
		}
	}
	return nil
}

// Levelize assigns each object's topological level (0 for objects with no
// fanins, otherwise one more than the deepest fanin) and returns the
// maximum level assigned. Level is advisory bookkeeping that no other
// package of this module reads; it does not affect TopoOrder's output.
func Levelize(n *network.Network) (int, error) {
	order, err := TopoOrder(n)
	if err != nil {
		return 0, err
	}

	maxLevel := 0
	levels := make(map[uint64]int, len(order))
	for _, id := range order {
		obj, ok := n.Object(id)
		if !ok {
			continue
		}
		lvl := 0
		for _, fe := range obj.Fanins {
			if levels[fe.Src]+1 > lvl {
				lvl = levels[fe.Src] + 1
			}
		}
		levels[id] = lvl
		obj.Level = lvl
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}
	return maxLevel, nil
}
