//
// Tencent is pleased to support the open source community by making trpc-strgraph-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-strgraph-go is licensed under the Apache License Version 2.0.
//
//

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracerDefaultsToNoop(t *testing.T) {
	require.NotNil(t, Tracer)

	// Without an installed SDK the global provider hands out a no-op
	// tracer; starting a span must be safe.
	ctx, span := Tracer.Start(context.Background(), "test")
	assert.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()
}
