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
	"fmt"
	"strconv"
	"strings"
)

// Built-in operations treat strings as byte sequences: case mapping touches
// ASCII letters only and reverse flips bytes, matching the engine's wire
// semantics. Unicode-aware replacements can be installed with
// RegisterUnicodeBuiltins.

// asciiSpace is the whitespace cutset used by trim and title.
const asciiSpace = " \t\n\v\f\r"

// RegisterBuiltins installs the built-in operations into r, replacing any
// entries already registered under the same names. The default registry is
// populated this way at init.
func RegisterBuiltins(r *Registry) {
	builtins := []struct {
		name    string
		inputs  int
		outputs int
		fn      Func
	}{
		{"identity", 1, 1, opIdentity},
		{"reverse", 1, 1, opReverse},
		{"to_upper", 1, 1, opToUpper},
		{"to_lower", 1, 1, opToLower},
		{"concat", VariadicInputs, 1, opConcat},
		{"split", 1, DynamicOutputs, opSplit},
		{"trim", 1, 1, opTrim},
		{"replace", 1, 1, opReplace},
		{"substring", 1, 1, opSubstring},
		{"repeat", 1, 1, opRepeat},
		{"pad_left", 1, 1, opPadLeft},
		{"pad_right", 1, 1, opPadRight},
		{"capitalize", 1, 1, opCapitalize},
		{"title", 1, 1, opTitle},
	}
	for _, b := range builtins {
		// Replace keeps RegisterBuiltins idempotent.
		if err := r.Replace(b.name, b.fn, WithInputs(b.inputs), WithOutputs(b.outputs)); err != nil {
			panic(fmt.Sprintf("ops: register builtin %q: %v", b.name, err))
		}
	}
}

func opIdentity(_ context.Context, inputs, _ []string) ([]string, error) {
	return []string{inputs[0]}, nil
}

func opReverse(_ context.Context, inputs, _ []string) ([]string, error) {
	src := inputs[0]
	out := make([]byte, len(src))
	for i := 0; i < len(src); i++ {
		out[i] = src[len(src)-1-i]
	}
	return []string{string(out)}, nil
}

func opToUpper(_ context.Context, inputs, _ []string) ([]string, error) {
	return []string{asciiUpper(inputs[0])}, nil
}

func opToLower(_ context.Context, inputs, _ []string) ([]string, error) {
	return []string{asciiLower(inputs[0])}, nil
}

func opConcat(_ context.Context, inputs, _ []string) ([]string, error) {
	var sb strings.Builder
	for _, in := range inputs {
		sb.WriteString(in)
	}
	return []string{sb.String()}, nil
}

func opSplit(_ context.Context, inputs, constants []string) ([]string, error) {
	if len(constants) != 1 {
		return nil, fmt.Errorf("%w: split wants 1 constant (delimiter), got %d", ErrInvalidArgument, len(constants))
	}
	src, delim := inputs[0], constants[0]
	if src == "" {
		return []string{""}, nil
	}
	if delim == "" {
		parts := make([]string, len(src))
		for i := 0; i < len(src); i++ {
			parts[i] = src[i : i+1]
		}
		return parts, nil
	}
	return strings.Split(src, delim), nil
}

func opTrim(_ context.Context, inputs, _ []string) ([]string, error) {
	return []string{strings.Trim(inputs[0], asciiSpace)}, nil
}

func opReplace(_ context.Context, inputs, constants []string) ([]string, error) {
	if len(constants) != 2 {
		return nil, fmt.Errorf("%w: replace wants 2 constants (old, new), got %d", ErrInvalidArgument, len(constants))
	}
	old, repl := constants[0], constants[1]
	if old == "" {
		// An empty pattern would match between every byte; the engine
		// defines it as a no-op instead.
		return []string{inputs[0]}, nil
	}
	return []string{strings.ReplaceAll(inputs[0], old, repl)}, nil
}

func opSubstring(_ context.Context, inputs, constants []string) ([]string, error) {
	if len(constants) != 2 {
		return nil, fmt.Errorf("%w: substring wants 2 constants (start, length), got %d", ErrInvalidArgument, len(constants))
	}
	start, err := strconv.Atoi(constants[0])
	if err != nil {
		return nil, fmt.Errorf("%w: substring start %q is not an integer", ErrInvalidArgument, constants[0])
	}
	length, err := strconv.Atoi(constants[1])
	if err != nil {
		return nil, fmt.Errorf("%w: substring length %q is not an integer", ErrInvalidArgument, constants[1])
	}
	src := inputs[0]
	if start < 0 {
		start = 0
	}
	if start > len(src) {
		start = len(src)
	}
	if length == -1 || length > len(src)-start {
		length = len(src) - start
	}
	if length < 0 {
		length = 0
	}
	return []string{src[start : start+length]}, nil
}

func opRepeat(_ context.Context, inputs, constants []string) ([]string, error) {
	if len(constants) != 1 {
		return nil, fmt.Errorf("%w: repeat wants 1 constant (count), got %d", ErrInvalidArgument, len(constants))
	}
	count, err := strconv.Atoi(constants[0])
	if err != nil {
		return nil, fmt.Errorf("%w: repeat count %q is not an integer", ErrInvalidArgument, constants[0])
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: repeat count must be non-negative, got %d", ErrInvalidArgument, count)
	}
	return []string{strings.Repeat(inputs[0], count)}, nil
}

func opPadLeft(_ context.Context, inputs, constants []string) ([]string, error) {
	return pad(inputs[0], constants, true)
}

func opPadRight(_ context.Context, inputs, constants []string) ([]string, error) {
	return pad(inputs[0], constants, false)
}

func pad(src string, constants []string, left bool) ([]string, error) {
	if len(constants) != 2 {
		return nil, fmt.Errorf("%w: pad wants 2 constants (width, fill), got %d", ErrInvalidArgument, len(constants))
	}
	width, err := strconv.Atoi(constants[0])
	if err != nil {
		return nil, fmt.Errorf("%w: pad width %q is not an integer", ErrInvalidArgument, constants[0])
	}
	fill := constants[1]
	if len(fill) != 1 {
		return nil, fmt.Errorf("%w: pad fill must be a single character, got %q", ErrInvalidArgument, fill)
	}
	if len(src) >= width {
		return []string{src}, nil
	}
	padding := strings.Repeat(fill, width-len(src))
	if left {
		return []string{padding + src}, nil
	}
	return []string{src + padding}, nil
}

func opCapitalize(_ context.Context, inputs, _ []string) ([]string, error) {
	src := inputs[0]
	if src == "" {
		return []string{""}, nil
	}
	return []string{asciiUpper(src[:1]) + asciiLower(src[1:])}, nil
}

func opTitle(_ context.Context, inputs, _ []string) ([]string, error) {
	src := []byte(inputs[0])
	wordStart := true
	for i, c := range src {
		if strings.IndexByte(asciiSpace, c) >= 0 {
			wordStart = true
			continue
		}
		if wordStart {
			src[i] = upperByte(c)
			wordStart = false
		} else {
			src[i] = lowerByte(c)
		}
	}
	return []string{string(src)}, nil
}

func asciiUpper(s string) string {
	out := []byte(s)
	for i, c := range out {
		out[i] = upperByte(c)
	}
	return string(out)
}

func asciiLower(s string) string {
	out := []byte(s)
	for i, c := range out {
		out[i] = lowerByte(c)
	}
	return string(out)
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
