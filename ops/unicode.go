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
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RegisterUnicodeBuiltins replaces the byte-oriented case and reverse
// built-ins with Unicode-correct implementations backed by x/text case
// mappers. This diverges from the default engine semantics: multi-byte
// characters are mapped as characters, not passed through byte by byte.
// The change only affects graphs compiled after the call.
func RegisterUnicodeBuiltins(r *Registry) error {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	unicodeOps := []struct {
		name string
		fn   Func
	}{
		{"to_upper", caserOp(upper)},
		{"to_lower", caserOp(lower)},
		{"title", caserOp(title)},
		{"reverse", opReverseRunes},
		{"capitalize", opCapitalizeRunes},
	}
	for _, u := range unicodeOps {
		if err := r.Replace(u.name, u.fn, WithInputs(1), WithOutputs(1)); err != nil {
			return err
		}
	}
	return nil
}

func caserOp(c cases.Caser) Func {
	return func(_ context.Context, inputs, _ []string) ([]string, error) {
		return []string{c.String(inputs[0])}, nil
	}
}

func opReverseRunes(_ context.Context, inputs, _ []string) ([]string, error) {
	runes := []rune(inputs[0])
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return []string{string(runes)}, nil
}

func opCapitalizeRunes(_ context.Context, inputs, _ []string) ([]string, error) {
	src := inputs[0]
	if src == "" {
		return []string{""}, nil
	}
	first, size := utf8.DecodeRuneInString(src)
	return []string{string(unicode.ToUpper(first)) + strings.ToLower(src[size:])}, nil
}
