//
// Tencent is pleased to support the open source community by making trpc-strgraph-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-strgraph-go is licensed under the Apache License Version 2.0.
//
//

package graph

import (
	"fmt"
	"sync"

	"trpc.group/trpc-go/trpc-strgraph-go/log"
	"trpc.group/trpc-go/trpc-strgraph-go/ops"
)

// compiledNode is a node with every input reference resolved to concrete
// indices and, for operation nodes, the registry entry captured at compile
// time. Registry changes after compilation do not affect it.
type compiledNode struct {
	def    *Node
	entry  *ops.Entry
	inputs []Port
}

// CompiledGraph is an immutable resolved snapshot of a graph. It may be
// shared freely between goroutines; the lazy per-target evaluation orders
// are the only mutable state and are populated under a mutex.
//
// A CompiledGraph stamps the source graph's revision at construction. The
// Run facade compares revisions before reusing a cached instance and
// discards it on mismatch.
type CompiledGraph struct {
	nodes    []compiledNode
	index    map[string]int
	revision uint64
	valid    bool
	err      error

	mu sync.Mutex
	// orders memoises the dependency-ordered node list per target index.
	orders map[int][]int
}

// IsValid reports whether resolution succeeded. An invalid compiled graph
// returns its retained error from every Run call.
func (c *CompiledGraph) IsValid() bool {
	return c.valid
}

// Err returns the first resolution error, or nil when the graph is valid.
func (c *CompiledGraph) Err() error {
	return c.err
}

// Revision returns the source graph revision stamped at compile time.
func (c *CompiledGraph) Revision() uint64 {
	return c.revision
}

// Compile resolves the graph against its registry and returns a compiled
// snapshot. Compile never fails hard: on a resolution error the returned
// handle reports IsValid() == false and retains the first error for
// surfacing at use.
func (g *Graph) Compile() *CompiledGraph {
	cg := &CompiledGraph{
		revision: g.revision,
		index:    make(map[string]int, len(g.nodes)),
		orders:   make(map[int][]int),
	}
	if err := g.resolve(cg); err != nil {
		cg.err = err
		log.Debugf("graph compile failed: %v", err)
		return cg
	}
	cg.valid = true
	log.Debugf("graph compiled: %d nodes, revision %d", len(cg.nodes), cg.revision)
	return cg
}

// resolve performs the compile steps: node index, registry lookup, port
// resolution and arity checks. Cycle detection is deferred to the first
// evaluation of each target, where the reachable set is known.
func (g *Graph) resolve(cg *CompiledGraph) error {
	if g.buildErr != nil {
		return g.buildErr
	}
	cg.nodes = make([]compiledNode, len(g.nodes))
	for i, n := range g.nodes {
		if _, exists := cg.index[n.ID]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		cg.index[n.ID] = i
		cg.nodes[i] = compiledNode{def: n}
	}
	// Resolve operation entries first so output-arity checks below can see
	// producers that appear later in insertion order.
	for i, n := range g.nodes {
		if n.Type != NodeTypeOperation {
			continue
		}
		entry, ok := g.registry.Lookup(n.OpName)
		if !ok {
			return fmt.Errorf("node %q: %w: %q", n.ID, ErrUnknownOperation, n.OpName)
		}
		cg.nodes[i].entry = entry
	}
	for i, n := range g.nodes {
		if n.Type != NodeTypeOperation {
			continue
		}
		entry := cg.nodes[i].entry
		if err := checkInputArity(n, entry); err != nil {
			return err
		}
		resolved := make([]Port, len(n.Inputs))
		for j, ref := range n.Inputs {
			port, err := cg.resolvePort(n, j, ref)
			if err != nil {
				return err
			}
			resolved[j] = port
		}
		cg.nodes[i].inputs = resolved
	}
	return nil
}

func checkInputArity(n *Node, entry *ops.Entry) error {
	switch {
	case entry.Inputs == ops.VariadicInputs:
		if len(n.Inputs) < 1 {
			return fmt.Errorf("node %q: %w: operation %q wants at least 1 input, got 0",
				n.ID, ErrBadPort, n.OpName)
		}
	case len(n.Inputs) != entry.Inputs:
		return fmt.Errorf("node %q: %w: operation %q wants %d inputs, got %d",
			n.ID, ErrBadPort, n.OpName, entry.Inputs, len(n.Inputs))
	}
	return nil
}

// resolvePort resolves one input reference of node n and checks the output
// index against the producer's declared arity. Dynamic producers accept any
// non-negative index here; their bound check happens at evaluation, when
// the produced vector length is known.
func (cg *CompiledGraph) resolvePort(n *Node, j int, ref string) (Port, error) {
	id, output := splitRef(ref)
	src, ok := cg.index[id]
	if !ok {
		return Port{}, fmt.Errorf("node %q input %d: %w: %q", n.ID, j, ErrUnknownNode, id)
	}
	producer := cg.nodes[src]
	declared := 1
	if producer.entry != nil {
		declared = producer.entry.Outputs
	}
	if declared != ops.DynamicOutputs && output >= declared {
		return Port{}, fmt.Errorf("node %q input %d: %w: output %d of node %q, which declares %d",
			n.ID, j, ErrBadPort, output, id, declared)
	}
	return Port{Node: src, Output: output}, nil
}

// order returns the dependency-ordered node indices for evaluating target:
// every node appears after all of its transitive inputs. The order is the
// DFS postorder over input edges, visiting each node's inputs in the order
// the node lists them, so it is deterministic; it is not sorted by node
// index. It is memoised per target. A cycle in the reachable subgraph yields
// ErrCycleDetected naming one participating node.
func (c *CompiledGraph) order(target int) ([]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if order, ok := c.orders[target]; ok {
		return order, nil
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]byte, len(c.nodes))
	order := make([]int, 0, len(c.nodes))

	type frame struct {
		node  int
		input int
	}
	stack := []frame{{node: target}}
	state[target] = visiting
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		inputs := c.nodes[top.node].inputs
		if top.input < len(inputs) {
			next := inputs[top.input].Node
			top.input++
			switch state[next] {
			case unvisited:
				state[next] = visiting
				stack = append(stack, frame{node: next})
			case visiting:
				return nil, fmt.Errorf("node %q: %w", c.nodes[next].def.ID, ErrCycleDetected)
			}
			continue
		}
		state[top.node] = done
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	c.orders[target] = order
	return order, nil
}
