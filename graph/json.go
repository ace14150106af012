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
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// jsonNode is the wire form of a node. Exactly one of Type and Op must be
// set; a node with neither but with a value is read as a constant for
// backward compatibility. Unknown fields are ignored.
type jsonNode struct {
	ID        string   `json:"id"`
	Type      string   `json:"type,omitempty"`
	Value     *string  `json:"value,omitempty"`
	Op        string   `json:"op,omitempty"`
	Inputs    []string `json:"inputs,omitempty"`
	Constants []string `json:"constants,omitempty"`
}

// jsonGraph is the top-level wire form. target_node optionally supplies a
// default target for one-shot execution.
type jsonGraph struct {
	Nodes      []jsonNode `json:"nodes"`
	TargetNode string     `json:"target_node,omitempty"`
}

// FromJSON parses a graph document. Node order in the nodes array is
// preserved and becomes the insertion order.
func FromJSON(data []byte, opts ...Option) (*Graph, error) {
	var doc jsonGraph
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if doc.Nodes == nil {
		return nil, fmt.Errorf("%w: missing \"nodes\" array", ErrSchema)
	}
	g := New(opts...)
	g.defaultTarget = doc.TargetNode
	for i := range doc.Nodes {
		n, err := doc.Nodes[i].toNode()
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// FromJSONC parses a graph document that may contain // and /* */ comments
// and trailing commas. Hand-written graph files tend to carry both.
func FromJSONC(data []byte, opts ...Option) (*Graph, error) {
	return FromJSON(jsonc.ToJSON(data), opts...)
}

// ToJSON serialises the graph in insertion order, emitting the same schema
// FromJSON accepts. The default target is not part of the graph form; it
// belongs to one-shot execution documents.
func (g *Graph) ToJSON() ([]byte, error) {
	return json.Marshal(g.document(""))
}

// document builds the wire form, optionally stamping a target node.
func (g *Graph) document(target string) *jsonGraph {
	doc := &jsonGraph{
		Nodes:      make([]jsonNode, 0, len(g.nodes)),
		TargetNode: target,
	}
	for _, n := range g.nodes {
		doc.Nodes = append(doc.Nodes, toJSONNode(n))
	}
	return doc
}

func toJSONNode(n *Node) jsonNode {
	switch n.Type {
	case NodeTypeOperation:
		inputs := n.Inputs
		if inputs == nil {
			inputs = []string{}
		}
		return jsonNode{
			ID:        n.ID,
			Op:        n.OpName,
			Inputs:    inputs,
			Constants: n.Constants,
		}
	case NodeTypePlaceholder:
		return jsonNode{ID: n.ID, Type: string(n.Type)}
	default:
		value := n.Value
		return jsonNode{ID: n.ID, Type: string(n.Type), Value: &value}
	}
}

// toNode validates the wire form and converts it to a node definition.
func (j *jsonNode) toNode() (*Node, error) {
	if j.ID == "" {
		return nil, fmt.Errorf("%w: node is missing \"id\"", ErrSchema)
	}
	if j.Type != "" && j.Op != "" {
		return nil, fmt.Errorf("%w: node %q sets both \"type\" and \"op\"", ErrSchema, j.ID)
	}
	if j.Op != "" {
		if j.Inputs == nil {
			return nil, fmt.Errorf("%w: operation node %q is missing \"inputs\"", ErrSchema, j.ID)
		}
		return &Node{
			ID:        j.ID,
			Type:      NodeTypeOperation,
			OpName:    j.Op,
			Inputs:    j.Inputs,
			Constants: j.Constants,
		}, nil
	}
	switch j.Type {
	case string(NodeTypeConstant), string(NodeTypeVariable):
		if j.Value == nil {
			return nil, fmt.Errorf("%w: %s node %q is missing \"value\"", ErrSchema, j.Type, j.ID)
		}
		return &Node{ID: j.ID, Type: NodeType(j.Type), Value: *j.Value}, nil
	case string(NodeTypePlaceholder):
		if j.Value != nil {
			return nil, fmt.Errorf("%w: placeholder node %q must not carry \"value\"", ErrSchema, j.ID)
		}
		return &Node{ID: j.ID, Type: NodeTypePlaceholder}, nil
	case "":
		// Legacy form: a bare value means a constant.
		if j.Value != nil {
			return &Node{ID: j.ID, Type: NodeTypeConstant, Value: *j.Value}, nil
		}
		return nil, fmt.Errorf("%w: node %q has neither \"type\" nor \"op\"", ErrSchema, j.ID)
	default:
		return nil, fmt.Errorf("%w: node %q has unknown type %q", ErrSchema, j.ID, j.Type)
	}
}

// ExecuteJSON parses a graph document, compiles it and evaluates its
// top-level target_node in one shot.
func ExecuteJSON(ctx context.Context, data []byte, feed map[string]string, opts ...Option) (string, error) {
	g, err := FromJSON(data, opts...)
	if err != nil {
		return "", err
	}
	if g.defaultTarget == "" {
		return "", fmt.Errorf("%w: document is missing \"target_node\"", ErrSchema)
	}
	return g.Compile().run(ctx, g.defaultTarget, feed)
}
