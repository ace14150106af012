//
// Tencent is pleased to support the open source community by making trpc-strgraph-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-strgraph-go is licensed under the Apache License Version 2.0.
//
//

package graph

import "fmt"

// NodeRef is a lightweight handle to a node created through the builder
// surface. It carries only the node ID; indexing into a multi-output node
// goes through Out, which yields the textual "id:k" port reference.
type NodeRef struct {
	id string
}

// ID returns the node identifier.
func (r NodeRef) ID() string {
	return r.id
}

// Ref returns the port reference selecting output 0.
func (r NodeRef) Ref() string {
	return r.id
}

// Out returns the port reference selecting output k. Useful for
// multi-output operations such as split.
func (r NodeRef) Out(k int) string {
	return fmt.Sprintf("%s:%d", r.id, k)
}

// String implements fmt.Stringer.
func (r NodeRef) String() string {
	return r.id
}

// NodeOption configures a node created through the builder surface.
type NodeOption func(*nodeOptions)

type nodeOptions struct {
	name      string
	constants []string
}

// WithName sets an explicit node ID instead of an auto-generated one.
// Reusing an existing ID is reported at compile time as a duplicate node.
func WithName(name string) NodeOption {
	return func(o *nodeOptions) {
		o.name = name
	}
}

// WithConstants sets the constant parameters of an operation node.
func WithConstants(constants ...string) NodeOption {
	return func(o *nodeOptions) {
		o.constants = constants
	}
}

// Constant appends a constant node and returns its handle.
func (g *Graph) Constant(value string, opts ...NodeOption) NodeRef {
	return g.appendNode(&Node{Type: NodeTypeConstant, Value: value}, opts)
}

// Placeholder appends a placeholder node: a runtime input whose value is
// supplied through the feed map at evaluation time.
func (g *Graph) Placeholder(opts ...NodeOption) NodeRef {
	return g.appendNode(&Node{Type: NodeTypePlaceholder}, opts)
}

// Variable appends a variable node with an initial value.
func (g *Graph) Variable(value string, opts ...NodeOption) NodeRef {
	return g.appendNode(&Node{Type: NodeTypeVariable, Value: value}, opts)
}

// Op appends an operation node. inputs are port references, typically
// obtained from NodeRef.Ref or NodeRef.Out; constants are passed with
// WithConstants. Whether the operation exists and the references resolve is
// checked at compile time.
func (g *Graph) Op(opName string, inputs []string, opts ...NodeOption) NodeRef {
	return g.appendNode(&Node{
		Type:   NodeTypeOperation,
		OpName: opName,
		Inputs: inputs,
	}, opts)
}

// appendNode finishes a builder node: it applies options, assigns the ID
// and records the first construction error for later surfacing. Builder
// calls stay fluent; errors appear at Compile or Run.
func (g *Graph) appendNode(n *Node, opts []NodeOption) NodeRef {
	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if n.Type == NodeTypeOperation {
		n.Constants = o.constants
	}
	if o.name != "" {
		n.ID = o.name
	} else {
		n.ID = g.nextID()
	}
	if err := g.AddNode(n); err != nil && g.buildErr == nil {
		g.buildErr = err
	}
	return NodeRef{id: n.ID}
}

// nextID generates the next free auto ID of the form "node_N".
func (g *Graph) nextID() string {
	for {
		id := fmt.Sprintf("node_%d", g.autoID)
		g.autoID++
		if _, exists := g.index[id]; !exists {
			return id
		}
	}
}
