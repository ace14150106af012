//
// Tencent is pleased to support the open source community by making trpc-strgraph-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-strgraph-go is licensed under the Apache License Version 2.0.
//
//

package graph

import "errors"

// Errors. All of them are surfaced to the caller of the top-level
// construction or evaluation call; execution aborts at the first failing
// node and earlier outputs are discarded. Wrapped messages carry the
// offending node or port.
var (
	// ErrSchema reports malformed JSON or missing required fields.
	ErrSchema = errors.New("schema error")
	// ErrDuplicateNode reports a node ID collision.
	ErrDuplicateNode = errors.New("duplicate node")
	// ErrUnknownNode reports a port reference to a non-existent node.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownOperation reports an operation name missing from the
	// registry at compile time.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrBadPort reports an out-of-range output index or an input arity
	// mismatch.
	ErrBadPort = errors.New("bad port")
	// ErrCycleDetected reports a cycle in the subgraph reachable from the
	// evaluation target.
	ErrCycleDetected = errors.New("cycle detected")
	// ErrMissingFeed reports a placeholder reached during evaluation that
	// is absent from the feed map.
	ErrMissingFeed = errors.New("missing feed")
)
