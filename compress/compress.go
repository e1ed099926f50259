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

// Package compress ties the schema/lifter, string table, template
// matcher, depth cache and byte encoder together into the end-to-end
// compression driver (spec §4.6): given an already-lifted tree, number
// it, collect its strings, then walk it a second time emitting either a direct node or
// a back-reference plus substitutions at every position.
package compress

import (
	"sort"

	"astcompress/core/ast"
	"astcompress/core/cache"
	"astcompress/core/encode"
	"astcompress/core/strtab"
	"astcompress/core/template"
)

// Compress lifts nothing itself: root must already be a typed, schema-
// validated tree (see ast.Registry.LiftMust/LiftSloppy). It numbers the
// tree, collects its strings, and returns the framed byte stream (spec
// §6: string table followed by one top-level node encoding).
func Compress(root *ast.Node) ([]byte, error) {
	ast.DepthFirstNumber(root)

	table := strtab.New()
	collectStrings(root, table)
	table.Finalize()

	w := encode.NewWriter()
	if err := w.WriteStringTable(table.Strings()); err != nil {
		return nil, err
	}

	d := &driver{table: table, cache: cache.New(), w: w, pendingTemplates: make(map[*ast.Node]*template.Template)}
	if err := ast.Walk(root, d); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// collectStrings runs the first, string-collecting pass over the tree
// (spec §4.3): an Identifier's own name is added via AddIdentifier (so
// single-character names never enter the table, matching the
// encoder's inline shorthand); every other string-typed field value is
// added unconditionally, recursing into arrays and maps, matching the
// worked example in spec §8 where a Program's plain "sourceType"
// string field populates the table.
func collectStrings(n *ast.Node, table *strtab.Table) {
	for _, fd := range n.Type.Fields {
		if fd.Deleted {
			continue
		}
		v, present := n.Fields[fd.Name]
		if !present {
			continue
		}
		if n.Type.Name == "Identifier" && fd.Name == "name" {
			if s, ok := v.(ast.String); ok {
				table.AddIdentifier(s.V)
			}
			continue
		}
		table.AddValueRecursive(v)
	}

	for _, bd := range n.Type.Branches {
		if bd.Deleted {
			continue
		}
		slot, ok := n.Children[bd.Name]
		if !ok {
			continue
		}
		if slot.Array {
			for _, child := range slot.Nodes {
				collectStrings(child, table)
			}
		} else if slot.Node != nil {
			collectStrings(slot.Node, table)
		}
	}
}

// driver implements ast.Visitor for the compression pass.
type driver struct {
	table *strtab.Table
	cache *cache.Cache
	w     *encode.Writer

	// pendingTemplates holds, per node whose begin emitted a subtree
	// reference, the freshly computed template to push onto the cache
	// when that node's end fires (spec §4.6: "Record the newly computed
	// template so it is pushed on end").
	pendingTemplates map[*ast.Node]*template.Template
}

func (d *driver) Begin(n *ast.Node, attrs ast.WalkAttrs) (ast.BeginResult, error) {
	if attrs.Depth > 0 {
		if m := d.cache.Search(attrs.Depth, n); m != nil {
			return d.emitMatch(n, m)
		}
	}

	if err := d.w.WriteDirectNode(n, d.table); err != nil {
		return ast.BeginResult{}, err
	}
	if err := d.writeBranchArrayLengths(n); err != nil {
		return ast.BeginResult{}, err
	}
	return ast.Natural, nil
}

func (d *driver) End(n *ast.Node, attrs ast.WalkAttrs) error {
	d.cache.PushTree(attrs.Depth, n)
	if tmpl, ok := d.pendingTemplates[n]; ok {
		d.cache.PushTemplate(attrs.Depth, tmpl)
		delete(d.pendingTemplates, n)
	}
	return nil
}

// EmptyArray never needs to write anything: every array branch's
// length is written up front, either by writeBranchArrayLengths (the
// direct-node path) or by emitMatch's array-substitution handling (the
// reference path), before the walker ever reaches the point where it
// would discover the array is empty.
func (d *driver) EmptyArray(name string, parentAttrs ast.WalkAttrs) error {
	return nil
}

// writeBranchArrayLengths writes the length tag for every array branch
// n actually carries, in declared order, so the decoder knows how many
// elements to expect before the walker recurses into them.
func (d *driver) writeBranchArrayLengths(n *ast.Node) error {
	for _, bd := range n.Type.Branches {
		if bd.Deleted || !bd.Array {
			continue
		}
		slot, ok := n.Children[bd.Name]
		if !ok {
			continue
		}
		d.w.WriteArrayLength(len(slot.Nodes))
	}
	return nil
}

// emitMatch writes the chosen back-reference and its substitutions,
// then returns the override list that reroutes the walker through
// exactly the branches whose subtree the cuts touched (spec §4.6).
//
// Every cut in a Match is classified by where it falls relative to the
// matched node n itself (see template.Cut's Branch/RootBranch docs):
//   - a field-level cut directly on n (RootBranch == "") is emitted
//     inline as bytes, right after the reference;
//   - a cut that is itself about one of n's own branches (Branch != "")
//     supplies that branch's override directly from its substitution;
//   - any other cut only marks its RootBranch "dirty": that branch
//     matched structurally at the top (same array length, both
//     present/absent in step with the origin) but something deeper
//     under it differs, so it is overridden with n's own live content
//     and left for the walker to re-examine node by node (each such
//     node gets its own independent cache search when the walker
//     reaches it).
func (d *driver) emitMatch(n *ast.Node, m *cache.Match) (ast.BeginResult, error) {
	switch m.Kind {
	case cache.KindTemplate:
		if err := d.w.WriteTemplateRef(m.Delta, m.ReverseIndex); err != nil {
			return ast.BeginResult{}, err
		}
	case cache.KindTree:
		if err := d.w.WriteSubtreeRef(m.Delta, m.ReverseIndex, cutNums(m.Cuts)); err != nil {
			return ast.BeginResult{}, err
		}
		d.pendingTemplates[n] = m.Template
	}

	branchSubst := map[string]template.Subst{}
	dirty := map[string]bool{}
	for _, c := range m.Cuts {
		if c.RootBranch == "" {
			if err := d.emitFieldCut(c); err != nil {
				return ast.BeginResult{}, err
			}
			continue
		}
		dirty[c.RootBranch] = true
		if c.Branch != "" {
			branchSubst[c.Branch] = c.Subst
		}
	}

	names := make([]string, 0, len(dirty))
	for name := range dirty {
		names = append(names, name)
	}
	sort.Strings(names)

	overrides := make([]ast.Override, 0, len(names))
	for _, name := range names {
		if subst, ok := branchSubst[name]; ok {
			ov, err := d.emitBranchSubst(name, subst)
			if err != nil {
				return ast.BeginResult{}, err
			}
			overrides = append(overrides, ov)
			continue
		}
		slot := n.Children[name]
		overrides = append(overrides, ast.Override{Name: name, Array: slot.Array, Node: slot.Node, Nodes: slot.Nodes})
	}

	return ast.BeginResult{Overrides: overrides}, nil
}

// emitFieldCut writes the inline bytes for a cut directly on the
// matched node's own fields (spec §4.6: "emit the substitute value").
func (d *driver) emitFieldCut(c template.Cut) error {
	switch s := c.Subst.(type) {
	case template.ValueSubst:
		return d.w.WriteValue(s.Value, d.table)
	case template.ValueMapSubst:
		return d.emitValueMap(s.Values)
	default:
		// node_type/child_names at the template's own root pair:
		// unreachable in practice, since either cut ends the match with
		// at most one step, which leaves no positive benefit for the
		// search policy to select (see cache.Cache.searchTrees/
		// searchTemplates); nothing to emit.
		return nil
	}
}

// emitValueMap writes a whole replacement field-value map: a count,
// then each key (sorted) as a raw length-prefixed string followed by
// its value. Spec §4.6 only pins the byte-exact format for the common
// cases worked through in §8; a wholesale field-set replacement is
// rare enough (it requires two same-typed nodes to disagree on which
// fields they even carry) that no literal byte scenario covers it, so
// this shape is this driver's own reasonable choice.
func (d *driver) emitValueMap(values map[string]ast.Value) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if err := d.w.WriteVarUint(uint64(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := d.w.WriteRawString(k); err != nil {
			return err
		}
		if err := d.w.WriteValue(values[k], d.table); err != nil {
			return err
		}
	}
	return nil
}

// emitBranchSubst handles a cut whose Subst concerns one of n's own
// branches directly: a null/notnull child mismatch, or an array-length
// mismatch. Arrays get an explicit length written (the origin's count
// no longer applies); a null substitute child needs no bytes and no
// override recursion at all.
func (d *driver) emitBranchSubst(name string, subst template.Subst) (ast.Override, error) {
	switch s := subst.(type) {
	case template.NodeSubst:
		return ast.Override{Name: name, Node: s.Node}, nil
	case template.NodeArraySubst:
		d.w.WriteArrayLength(len(s.Nodes))
		return ast.Override{Name: name, Array: true, Nodes: s.Nodes}, nil
	default:
		return ast.Override{Name: name}, nil
	}
}

func cutNums(cuts []template.Cut) []int {
	nums := make([]int, len(cuts))
	for i, c := range cuts {
		nums[i] = c.Num
	}
	return nums
}
