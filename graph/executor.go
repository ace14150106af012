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
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-strgraph-go/log"
	"trpc.group/trpc-go/trpc-strgraph-go/ops"
	"trpc.group/trpc-go/trpc-strgraph-go/telemetry/trace"
)

// Run evaluates the target port against the compiled graph. feed maps
// placeholder IDs to their runtime values and may be nil for graphs without
// placeholders. The context is polled between nodes, so a cancelled context
// aborts the evaluation at the next node boundary.
func (c *CompiledGraph) Run(ctx context.Context, target string, feed map[string]string) (string, error) {
	return c.run(ctx, target, feed)
}

// RunAuto is reserved for heuristic dispatch between execution strategies.
// Today it is identical to Run.
func (c *CompiledGraph) RunAuto(ctx context.Context, target string, feed map[string]string) (string, error) {
	return c.run(ctx, target, feed)
}

func (c *CompiledGraph) run(ctx context.Context, target string, feed map[string]string) (string, error) {
	if !c.valid {
		if c.err != nil {
			return "", c.err
		}
		return "", errors.New("compiled graph is not resolved")
	}
	id, output := splitRef(target)
	idx, ok := c.index[id]
	if !ok {
		return "", fmt.Errorf("target %q: %w", id, ErrUnknownNode)
	}
	order, err := c.order(idx)
	if err != nil {
		return "", err
	}

	invocationID := uuid.NewString()
	ctx, span := trace.Tracer.Start(ctx, "strgraph.execute", oteltrace.WithAttributes(
		attribute.String(trace.KeyInvocationID, invocationID),
		attribute.String(trace.KeyTarget, target),
		attribute.Int(trace.KeyNodeCount, len(order)),
	))
	defer span.End()
	log.Debugf("execute %s: target=%s nodes=%d", invocationID, target, len(order))

	// Per-evaluation output buffers, discarded at return. Only compiled
	// structure is memoised across calls, never string values.
	buffers := make([][]string, len(c.nodes))
	for _, i := range order {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return "", err
		}
		if err := c.evalNode(ctx, i, feed, buffers); err != nil {
			span.RecordError(err)
			return "", err
		}
	}

	produced := buffers[idx]
	if output >= len(produced) {
		err := fmt.Errorf("target %q: %w: output %d of %d", target, ErrBadPort, output, len(produced))
		span.RecordError(err)
		return "", err
	}
	return produced[output], nil
}

// evalNode produces the output vector of one node into buffers. All
// transitive inputs have been produced already by the evaluation order.
func (c *CompiledGraph) evalNode(ctx context.Context, i int, feed map[string]string, buffers [][]string) error {
	cn := c.nodes[i]
	def := cn.def
	switch def.Type {
	case NodeTypeConstant, NodeTypeVariable:
		buffers[i] = []string{def.Value}
	case NodeTypePlaceholder:
		value, ok := feed[def.ID]
		if !ok {
			return fmt.Errorf("placeholder %q: %w", def.ID, ErrMissingFeed)
		}
		buffers[i] = []string{value}
	case NodeTypeOperation:
		inputs := make([]string, len(cn.inputs))
		for j, p := range cn.inputs {
			src := buffers[p.Node]
			if p.Output >= len(src) {
				return fmt.Errorf("node %q input %d: %w: node %q produced %d outputs, want output %d",
					def.ID, j, ErrBadPort, c.nodes[p.Node].def.ID, len(src), p.Output)
			}
			inputs[j] = src[p.Output]
		}
		outputs, err := cn.entry.Fn(ctx, inputs, def.Constants)
		if err != nil {
			if cn.entry.Kind == ops.KindForeign {
				return fmt.Errorf("node %q: operation %q: %w: %v", def.ID, def.OpName, ops.ErrOperationFailed, err)
			}
			return fmt.Errorf("node %q: operation %q: %w", def.ID, def.OpName, err)
		}
		if cn.entry.Outputs != ops.DynamicOutputs && len(outputs) != cn.entry.Outputs {
			return fmt.Errorf("node %q: operation %q: %w: produced %d outputs, declared %d",
				def.ID, def.OpName, ops.ErrOperationFailed, len(outputs), cn.entry.Outputs)
		}
		buffers[i] = outputs
	}
	return nil
}

// Run evaluates target using the cheapest available path: a cached
// CompiledGraph whose revision still matches is reused; otherwise the graph
// is serialised to JSON and executed through a throwaway compile of the
// parsed document. The two paths produce identical results; RunOptimized
// avoids the JSON round trip by compiling and caching.
func (g *Graph) Run(ctx context.Context, target string, feed map[string]string) (string, error) {
	g.mu.Lock()
	cached := g.compiled
	g.mu.Unlock()
	if cached != nil && cached.valid && cached.revision == g.revision {
		return cached.run(ctx, target, feed)
	}
	if g.buildErr != nil {
		return "", g.buildErr
	}
	data, err := g.ToJSON()
	if err != nil {
		return "", err
	}
	parsed, err := FromJSON(data, WithRegistry(g.registry))
	if err != nil {
		return "", err
	}
	return parsed.Compile().run(ctx, target, feed)
}

// RunOptimized evaluates target through a compiled graph, building and
// caching one on first use. The cache is keyed by the graph revision:
// appending a node discards it.
func (g *Graph) RunOptimized(ctx context.Context, target string, feed map[string]string) (string, error) {
	return g.ensureCompiled().run(ctx, target, feed)
}

func (g *Graph) ensureCompiled() *CompiledGraph {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.compiled == nil || g.compiled.revision != g.revision {
		g.compiled = g.Compile()
	}
	return g.compiled
}
