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

// Package template implements the template-matching engine (spec §4.4):
// given an "origin" subtree and a "query" subtree of the same root type,
// ComputeTemplate walks both breadth-first and records every position
// where they diverge (a Cut) or agree (a step), producing a reusable
// Template the depth cache can later try to re-apply to other queries.
package template

import (
	"fmt"

	"astcompress/core/ast"
)

// Cut reasons (spec §4.4's closed set). ValueCutReason formats the
// "value:<i>:<name>" family.
const (
	ReasonNodeType          = "node_type"
	ReasonFieldNames        = "field_names"
	ReasonChildNames        = "child_names"
	ReasonChildArrayLength  = "child_array_length"
	ReasonNullQueryChild    = "null_query_child"
	ReasonNotNullQueryChild = "notnull_query_child"
)

// ValueCutReason formats the per-field cut reason tag.
func ValueCutReason(i int, name string) string {
	return fmt.Sprintf("value:%d:%s", i, name)
}

// Subst is the tagged-union payload a Cut carries (spec §3: "exactly
// one of value/value_map/node/node_array").
type Subst interface {
	subst()
}

// ValueSubst replaces the origin's field value at this position.
type ValueSubst struct {
	Value ast.Value
}

func (ValueSubst) subst() {}

// ValueMapSubst replaces the origin's whole field-value map (used when
// the origin and query field-name sets differ).
type ValueMapSubst struct {
	Values map[string]ast.Value
}

func (ValueMapSubst) subst() {}

// NodeSubst replaces a single child node (or removes it, when Node is
// nil — see the null_query_child case in ComputeTemplate).
type NodeSubst struct {
	Node *ast.Node
}

func (NodeSubst) subst() {}

// NodeArraySubst replaces a child array.
type NodeArraySubst struct {
	Nodes []*ast.Node
}

func (NodeArraySubst) subst() {}

// Cut is one position where the origin and the query diverge (spec §3).
//
// Branch and RootBranch exist purely for the compression driver's
// benefit (spec §4.6 does not name them): Branch is set when a cut
// concerns a named branch of the template's own root node directly
// (a root-level child_array_length/null_query_child/
// notnull_query_child cut); RootBranch is set to the root node's
// branch whose subtree this cut falls anywhere under, letting the
// driver decide, per root branch, whether that branch can be skipped
// entirely (no cut anywhere under it) or must be replayed.
type Cut struct {
	Num        int
	Reason     string
	Descr      string
	Subst      Subst
	Branch     string
	RootBranch string
}

// Template is an origin subtree plus the cut list computed against one
// query (spec §3).
type Template struct {
	Tree      *ast.Node
	StepCount int
	CutCount  int
	Cuts      []Cut
}

// Benefit is the estimated number of bytes saved by referencing this
// template instead of emitting the query directly: step_count - 1 (one
// byte for the reference itself).
func (t *Template) Benefit() int {
	return t.StepCount - 1
}

// matchState accumulates the shared, monotonically increasing position
// counter and the step/cut tallies across the whole breadth-first walk
// (spec §4.4: "Every step or cut increments number by one").
type matchState struct {
	number    int
	stepCount int
	cutCount  int
	cuts      []Cut
}

func (m *matchState) step() {
	m.number++
	m.stepCount++
}

func (m *matchState) cut(reason, descr string, s Subst, branch, rootBranch string) {
	m.cuts = append(m.cuts, Cut{Num: m.number, Reason: reason, Descr: descr, Subst: s, Branch: branch, RootBranch: rootBranch})
	m.number++
	m.cutCount++
}

// pair is one queued comparison. rootBranch is the root node's own
// branch whose subtree this pair falls under, inherited unchanged by
// every pair enqueued while matching it; it is empty only for the
// initial (root) pair itself.
type pair struct {
	origin     *ast.Node
	query      *ast.Node
	isRoot     bool
	rootBranch string
}

// ComputeTemplate computes the template describing how query diverges
// from origin (spec §4.4). Both nodes are assumed to be of the same
// root type by the caller's search policy, but ComputeTemplate itself
// tolerates a root type mismatch (it simply produces a single
// node_type cut).
func ComputeTemplate(origin, query *ast.Node) *Template {
	m := &matchState{}
	queue := []pair{{origin: origin, query: query, isRoot: true}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		queue = matchNodes(m, p, queue)
	}
	return &Template{Tree: origin, StepCount: m.stepCount, CutCount: m.cutCount, Cuts: m.cuts}
}

func matchNodes(m *matchState, p pair, queue []pair) []pair {
	o, q := p.origin, p.query

	if o.Type != q.Type {
		m.cut(ReasonNodeType, "node type differs", NodeSubst{Node: q}, "", p.rootBranch)
		return queue
	}
	m.step()

	oFields, qFields := o.FieldNames(), q.FieldNames()
	if !sameStrings(oFields, qFields) {
		m.cut(ReasonFieldNames, "field name set differs", ValueMapSubst{Values: q.Fields}, "", p.rootBranch)
		return queue
	}

	for i, name := range oFields {
		if !ast.ValueEqual(o.Fields[name], q.Fields[name]) {
			m.cut(ValueCutReason(i, name), fmt.Sprintf("field %q differs", name), ValueSubst{Value: q.Fields[name]}, "", p.rootBranch)
		}
	}

	oBranches, qBranches := o.BranchNames(), q.BranchNames()
	if !sameStrings(oBranches, qBranches) {
		m.cut(ReasonChildNames, "branch name set differs", NodeSubst{Node: q}, "", p.rootBranch)
		return queue
	}

	m.step() // tree_top

	for _, name := range oBranches {
		oSlot, qSlot := o.Children[name], q.Children[name]
		childRootBranch := p.rootBranch
		if p.isRoot {
			childRootBranch = name
		}

		if oSlot.Array {
			if len(oSlot.Nodes) == len(qSlot.Nodes) {
				m.step() // child_array_length
				for i := range oSlot.Nodes {
					queue = append(queue, pair{origin: oSlot.Nodes[i], query: qSlot.Nodes[i], rootBranch: childRootBranch})
				}
			} else {
				branch := ""
				if p.isRoot {
					branch = name
				}
				m.cut(ReasonChildArrayLength, fmt.Sprintf("branch %q array length differs", name), NodeArraySubst{Nodes: qSlot.Nodes}, branch, childRootBranch)
			}
			continue
		}

		oNil, qNil := oSlot.Node == nil, qSlot.Node == nil
		branch := ""
		if p.isRoot {
			branch = name
		}
		switch {
		case oNil && qNil:
			m.step() // null_children
		case oNil && !qNil:
			m.cut(ReasonNotNullQueryChild, fmt.Sprintf("branch %q appears only in query", name), NodeSubst{Node: qSlot.Node}, branch, childRootBranch)
		case !oNil && qNil:
			m.cut(ReasonNullQueryChild, fmt.Sprintf("branch %q missing in query", name), NodeSubst{Node: qSlot.Node}, branch, childRootBranch)
		default:
			m.step() // check_children
			queue = append(queue, pair{origin: oSlot.Node, query: qSlot.Node, rootBranch: childRootBranch})
		}
	}

	return queue
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Matches re-runs ComputeTemplate(t.Tree, query) and returns the
// resulting cut list iff step_count, cut_count, len(cuts), and every
// cuts[i].Num agree with t (spec §4.4's template.matches).
func (t *Template) Matches(query *ast.Node) ([]Cut, bool) {
	candidate := ComputeTemplate(t.Tree, query)
	if candidate.StepCount != t.StepCount || candidate.CutCount != t.CutCount || len(candidate.Cuts) != len(t.Cuts) {
		return nil, false
	}
	for i := range candidate.Cuts {
		if candidate.Cuts[i].Num != t.Cuts[i].Num {
			return nil, false
		}
	}
	return candidate.Cuts, true
}
