//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package strtab implements the frequency-ranked string table (spec
// §4.3): a two-phase collector (add during the first pass over the
// tree, then finalize) that amortizes identifier and string cost by
// assigning low ids to the most frequently used strings.
package strtab

import (
	"sort"

	"astcompress/common"
	"astcompress/core/ast"
)

// Table is an append-only multiset during collection; after Finalize it
// becomes an immutable sorted vector plus a lookup map.
type Table struct {
	counts  map[string]int
	order   []string // insertion order, used to break count ties
	strings []string // finalized, rank-ordered
	ranks   map[string]uint32
	final   bool
}

// New returns an empty, not-yet-finalized Table.
func New() *Table {
	return &Table{counts: make(map[string]int)}
}

// Add bumps the use-count for s. Panics if called after Finalize,
// matching spec §4.3's "further add calls are forbidden" (a programmer
// error, not a data error, per spec §7's assertion policy).
func (t *Table) Add(s string) {
	if t.final {
		panic("strtab: Add called after Finalize")
	}
	if _, ok := t.counts[s]; !ok {
		t.order = append(t.order, s)
	}
	t.counts[s]++
}

// AddIdentifier adds s only if it is at least two characters long;
// single-character identifiers are inlined by the encoder (spec §4.6)
// and never enter the table.
func (t *Table) AddIdentifier(s string) {
	if len(s) >= 2 {
		t.Add(s)
	}
}

// AddValueRecursive adds every string found in v, recursing into arrays
// and maps (spec §4.3).
func (t *Table) AddValueRecursive(v ast.Value) {
	switch val := v.(type) {
	case ast.String:
		t.Add(val.V)
	case ast.Array:
		for _, item := range val.Items {
			t.AddValueRecursive(item)
		}
	case ast.Map:
		for _, item := range val.Items {
			t.AddValueRecursive(item)
		}
	}
}

// Finalize snapshots the collected keys into a vector sorted by
// descending use-count, ties broken by insertion order, and assigns
// each key its vector index as id. After Finalize, Add/AddIdentifier/
// AddValueRecursive must not be called again.
func (t *Table) Finalize() {
	if t.final {
		panic("strtab: Finalize called twice")
	}
	strs := make([]string, len(t.order))
	copy(strs, t.order)

	pos := make(map[string]int, len(strs))
	for i, s := range strs {
		pos[s] = i
	}
	sort.SliceStable(strs, func(i, j int) bool {
		ci, cj := t.counts[strs[i]], t.counts[strs[j]]
		if ci != cj {
			return ci > cj
		}
		return pos[strs[i]] < pos[strs[j]]
	})

	t.strings = strs
	t.ranks = make(map[string]uint32, len(strs))
	for i, s := range strs {
		t.ranks[s] = uint32(i)
	}
	t.final = true
}

// Lookup returns the rank assigned to s. s must have been Add-ed before
// Finalize was called.
func (t *Table) Lookup(s string) (uint32, error) {
	id, ok := t.ranks[s]
	if !ok {
		return 0, &common.UnknownStringError{S: s}
	}
	return id, nil
}

// Strings returns the finalized, rank-ordered string vector. It must
// not be called before Finalize.
func (t *Table) Strings() []string {
	return t.strings
}

// Len returns the number of distinct strings in the table (valid both
// before and after Finalize).
func (t *Table) Len() int {
	if t.final {
		return len(t.strings)
	}
	return len(t.order)
}
