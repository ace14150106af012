//
// Tencent is pleased to support the open source community by making trpc-strgraph-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-strgraph-go is licensed under the Apache License Version 2.0.
//
//

package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoOp(_ context.Context, inputs, _ []string) ([]string, error) {
	return []string{inputs[0]}, nil
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("echo", echoOp, WithInputs(1)))

	entry, ok := r.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", entry.Name)
	assert.Equal(t, KindNative, entry.Kind)
	assert.Equal(t, 1, entry.Inputs)
	assert.Equal(t, 1, entry.Outputs)

	assert.True(t, r.Has("echo"))
	assert.False(t, r.Has("missing"))
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("echo", echoOp))

	err := r.Register("echo", echoOp)
	require.ErrorIs(t, err, ErrDuplicateOperation)

	// Replace overrides.
	require.NoError(t, r.Replace("echo", echoOp, WithOutputs(DynamicOutputs)))
	entry, ok := r.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, DynamicOutputs, entry.Outputs)
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, r.Register("", echoOp), ErrInvalidArgument)
	require.ErrorIs(t, r.Register("nilfn", nil), ErrInvalidArgument)
}

func TestList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("zeta", echoOp))
	require.NoError(t, r.Register("alpha", echoOp))
	require.NoError(t, r.Register("mid", echoOp))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.List())
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("echo", echoOp))
	assert.True(t, r.Remove("echo"))
	assert.False(t, r.Remove("echo"))
	assert.False(t, r.Has("echo"))
}

func TestDefaultHasBuiltins(t *testing.T) {
	for _, name := range []string{
		"identity", "reverse", "to_upper", "to_lower", "concat", "split",
		"trim", "replace", "substring", "repeat", "pad_left", "pad_right",
		"capitalize", "title",
	} {
		assert.True(t, Default().Has(name), "builtin %q missing", name)
	}

	split, ok := Default().Lookup("split")
	require.True(t, ok)
	assert.Equal(t, DynamicOutputs, split.Outputs)

	concat, ok := Default().Lookup("concat")
	require.True(t, ok)
	assert.Equal(t, VariadicInputs, concat.Inputs)
}

func TestRegisterOperationFacade(t *testing.T) {
	name := "registry_test_shout"
	require.NoError(t, RegisterOperation(name, func(_ context.Context, inputs, _ []string) ([]string, error) {
		return []string{inputs[0] + "!"}, nil
	}, false, false))
	defer Default().Remove(name)

	assert.True(t, HasOperation(name))
	assert.Contains(t, ListOperations(), name)

	entry, ok := Default().Lookup(name)
	require.True(t, ok)
	assert.Equal(t, KindForeign, entry.Kind)
	assert.Equal(t, 1, entry.Outputs)

	// Duplicate registration without replace fails, with replace succeeds.
	err := RegisterOperation(name, echoOp, false, false)
	require.ErrorIs(t, err, ErrDuplicateOperation)
	require.NoError(t, RegisterOperation(name, echoOp, true, true))

	entry, ok = Default().Lookup(name)
	require.True(t, ok)
	assert.Equal(t, DynamicOutputs, entry.Outputs)
}
