//
// Tencent is pleased to support the open source community by making trpc-strgraph-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-strgraph-go is licensed under the Apache License Version 2.0.
//
//

// Package trace holds the OpenTelemetry tracer used by the engine. The
// tracer comes from the global provider and is a no-op unless the embedding
// application installs an SDK.
package trace

import (
	"go.opentelemetry.io/otel"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// tracerName identifies engine spans to the tracer provider.
const tracerName = "trpc.group/trpc-go/trpc-strgraph-go"

// Span attribute keys.
const (
	// KeyInvocationID carries the per-evaluation invocation ID.
	KeyInvocationID = "strgraph.invocation_id"
	// KeyTarget carries the evaluated target port reference.
	KeyTarget = "strgraph.target"
	// KeyNodeCount carries the number of nodes in the evaluation order.
	KeyNodeCount = "strgraph.node_count"
)

// Tracer is the tracer used for engine spans. Tests may swap it to observe
// recorded spans.
var Tracer oteltrace.Tracer = otel.Tracer(tracerName)
