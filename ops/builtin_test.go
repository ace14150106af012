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

// call runs a builtin from the default registry directly.
func call(t *testing.T, name string, inputs, constants []string) ([]string, error) {
	t.Helper()
	entry, ok := Default().Lookup(name)
	require.True(t, ok, "builtin %q not registered", name)
	return entry.Fn(context.Background(), inputs, constants)
}

func TestSingleOutputBuiltins(t *testing.T) {
	cases := []struct {
		name      string
		op        string
		inputs    []string
		constants []string
		want      string
	}{
		{"identity", "identity", []string{"hello"}, nil, "hello"},
		{"reverse", "reverse", []string{"hello"}, nil, "olleh"},
		{"reverse empty", "reverse", []string{""}, nil, ""},
		{"to_upper", "to_upper", []string{"Hello, World!"}, nil, "HELLO, WORLD!"},
		{"to_upper non-ascii passes through", "to_upper", []string{"héllo"}, nil, "HéLLO"},
		{"to_lower", "to_lower", []string{"Hello, World!"}, nil, "hello, world!"},
		{"concat", "concat", []string{"a", "b", "c"}, nil, "abc"},
		{"concat single", "concat", []string{"solo"}, nil, "solo"},
		{"trim", "trim", []string{"  \thello world\n "}, nil, "hello world"},
		{"trim all whitespace", "trim", []string{" \t\r\n"}, nil, ""},
		{"replace", "replace", []string{"hello world"}, []string{"world", "python"}, "hello python"},
		{"replace all occurrences", "replace", []string{"aaa"}, []string{"a", "bb"}, "bbbbbb"},
		{"replace empty old is noop", "replace", []string{"abc"}, []string{"", "x"}, "abc"},
		{"substring", "substring", []string{"hello world"}, []string{"6", "5"}, "world"},
		{"substring to end", "substring", []string{"hello world"}, []string{"6", "-1"}, "world"},
		{"substring start clamped", "substring", []string{"abc"}, []string{"10", "2"}, ""},
		{"substring negative start clamped", "substring", []string{"abc"}, []string{"-4", "2"}, "ab"},
		{"substring length clamped", "substring", []string{"abc"}, []string{"1", "99"}, "bc"},
		{"repeat", "repeat", []string{"ab"}, []string{"3"}, "ababab"},
		{"repeat zero", "repeat", []string{"ab"}, []string{"0"}, ""},
		{"pad_left", "pad_left", []string{"42"}, []string{"5", "0"}, "00042"},
		{"pad_left wide enough", "pad_left", []string{"hello"}, []string{"3", "x"}, "hello"},
		{"pad_right", "pad_right", []string{"hi"}, []string{"4", "."}, "hi.."},
		{"capitalize", "capitalize", []string{"hELLO world"}, nil, "Hello world"},
		{"capitalize empty", "capitalize", []string{""}, nil, ""},
		{"title", "title", []string{"hello world PYTHON"}, nil, "Hello World Python"},
		{"title tabs and newlines", "title", []string{"one\ttwo\nthree"}, nil, "One\tTwo\nThree"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := call(t, tc.op, tc.inputs, tc.constants)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0])
		})
	}
}

func TestSplit(t *testing.T) {
	got, err := call(t, "split", []string{"the quick brown fox"}, []string{" "})
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "quick", "brown", "fox"}, got)

	// Empty delimiter splits into one output per character.
	got, err = call(t, "split", []string{"abc"}, []string{""})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	// Empty input yields a single empty output.
	got, err = call(t, "split", []string{""}, []string{","})
	require.NoError(t, err)
	assert.Equal(t, []string{""}, got)

	// Delimiter not found yields the whole input.
	got, err = call(t, "split", []string{"abc"}, []string{","})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, got)
}

func TestBuiltinInvalidArguments(t *testing.T) {
	cases := []struct {
		name      string
		op        string
		inputs    []string
		constants []string
	}{
		{"split missing delimiter", "split", []string{"a"}, nil},
		{"replace missing constants", "replace", []string{"a"}, []string{"x"}},
		{"substring non-numeric start", "substring", []string{"a"}, []string{"x", "1"}},
		{"substring non-numeric length", "substring", []string{"a"}, []string{"0", "x"}},
		{"repeat negative", "repeat", []string{"a"}, []string{"-1"}},
		{"repeat non-numeric", "repeat", []string{"a"}, []string{"two"}},
		{"pad_left multi-char fill", "pad_left", []string{"a"}, []string{"5", "ab"}},
		{"pad_right empty fill", "pad_right", []string{"a"}, []string{"5", ""}},
		{"pad_left non-numeric width", "pad_left", []string{"a"}, []string{"w", "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := call(t, tc.op, tc.inputs, tc.constants)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

// Built-ins treat strings as byte sequences: reverse flips bytes, so a
// multi-byte character comes out mangled. This pins the documented default.
func TestReverseIsByteOriented(t *testing.T) {
	got, err := call(t, "reverse", []string{"ab\xc3\xa9"}, nil) // "abé"
	require.NoError(t, err)
	assert.Equal(t, "\xa9\xc3ba", got[0])
}
