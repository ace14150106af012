//
// Tencent is pleased to support the open source community by making trpc-strgraph-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-strgraph-go is licensed under the Apache License Version 2.0.
//
//

// Package graph implements a string dataflow engine: computations over
// strings are described as a directed acyclic graph of typed nodes, and the
// engine resolves dependencies, executes registered operations and returns
// the value at any requested output port.
//
// A graph is built either through the fluent builder surface (Constant,
// Placeholder, Variable, Op) or loaded from its JSON representation, then
// evaluated with Run, RunOptimized or an explicitly compiled handle:
//
//	g := graph.New()
//	text := g.Placeholder(graph.WithName("text"))
//	upper := g.Op("to_upper", []string{text.Ref()})
//	rev := g.Op("reverse", []string{upper.Ref()})
//	out, err := g.Run(ctx, rev.Ref(), map[string]string{"text": "hello"})
//
// Values are exclusively strings. Evaluation is sequential within a single
// call; distinct evaluations of one immutable CompiledGraph may run
// concurrently.
package graph

import (
	"fmt"
	"sync"

	"trpc.group/trpc-go/trpc-strgraph-go/ops"
)

// NodeType discriminates the four node kinds.
type NodeType string

const (
	// NodeTypeConstant is a node with a fixed value set at definition time.
	NodeTypeConstant NodeType = "constant"
	// NodeTypePlaceholder is a runtime input bound through the feed map.
	NodeTypePlaceholder NodeType = "placeholder"
	// NodeTypeVariable holds state initialised at definition time. No
	// operation mutates variables yet, so they evaluate like constants.
	NodeTypeVariable NodeType = "variable"
	// NodeTypeOperation computes its outputs from other nodes.
	NodeTypeOperation NodeType = "operation"
)

// Node is a single vertex definition. Nodes are appended to a graph and
// never edited in place afterwards.
type Node struct {
	// ID is the unique identifier within the owning graph.
	ID string
	// Type is the node kind.
	Type NodeType
	// Value is the stored string for constant and variable nodes.
	Value string
	// OpName names the registry operation for operation nodes.
	OpName string
	// Inputs holds ordered port references ("id" or "id:k") for operation
	// nodes.
	Inputs []string
	// Constants holds ordered constant parameters for operation nodes.
	Constants []string
}

// Graph is an insertion-ordered collection of node definitions. A graph is
// owned by its creator; concurrent appends are not supported. Appending a
// node bumps the revision counter, which invalidates every CompiledGraph
// derived from an earlier revision.
type Graph struct {
	nodes    []*Node
	index    map[string]int
	revision uint64
	autoID   int
	registry *ops.Registry

	// defaultTarget is the top-level target_node of a loaded JSON document.
	defaultTarget string
	// buildErr records the first error from the fluent builder surface; it
	// is surfaced at compile time.
	buildErr error

	mu       sync.Mutex
	compiled *CompiledGraph
}

// Option configures a new graph.
type Option func(*Graph)

// WithRegistry sets the operation registry the graph compiles against.
// Defaults to ops.Default().
func WithRegistry(r *ops.Registry) Option {
	return func(g *Graph) {
		g.registry = r
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		index:    make(map[string]int),
		registry: ops.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddNode appends a node definition. The node ID must be non-empty and
// unique within the graph. Input references of operation nodes are not
// resolved here; resolution happens at compile time, so forward references
// are allowed while building.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrSchema)
	}
	if n.ID == "" {
		return fmt.Errorf("%w: node ID cannot be empty", ErrSchema)
	}
	switch n.Type {
	case NodeTypeConstant, NodeTypePlaceholder, NodeTypeVariable, NodeTypeOperation:
	default:
		return fmt.Errorf("%w: node %q has unknown type %q", ErrSchema, n.ID, n.Type)
	}
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.revision++
	return nil
}

// NodeByID returns the index of the node with the given ID.
func (g *Graph) NodeByID(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Node returns the node definition at index i.
func (g *Graph) Node(i int) *Node {
	return g.nodes[i]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Revision returns the mutation counter. It increases on every successful
// AddNode.
func (g *Graph) Revision() uint64 {
	return g.revision
}

// DefaultTarget returns the top-level target_node carried by the JSON
// document this graph was loaded from, if any.
func (g *Graph) DefaultTarget() string {
	return g.defaultTarget
}

// Registry returns the operation registry the graph compiles against.
func (g *Graph) Registry() *ops.Registry {
	return g.registry
}
