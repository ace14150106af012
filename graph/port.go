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
	"strconv"
	"strings"
)

// Port is a resolved output reference: the producing node's index in the
// compiled node vector and the output slot to read.
type Port struct {
	Node   int
	Output int
}

// splitRef parses a textual port reference. "id" selects output 0 and
// "id:k" selects output k for non-negative k. A suffix that does not parse
// as a non-negative integer is treated as part of the node ID.
func splitRef(ref string) (id string, output int) {
	idx := strings.LastIndexByte(ref, ':')
	if idx < 0 {
		return ref, 0
	}
	k, err := strconv.Atoi(ref[idx+1:])
	if err != nil || k < 0 {
		return ref, 0
	}
	return ref[:idx], k
}
