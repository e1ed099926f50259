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

// Package cache implements the depth-indexed compression cache (spec
// §4.5): a bounded per-depth history of recently emitted subtrees and
// derived templates, with a search policy that finds the best
// back-reference across nearby depths.
package cache

import (
	"astcompress/core/ast"
	"astcompress/core/template"
)

// templateDeltas and treeDeltas are the depth offsets probed by
// template_search and tree_search respectively (spec §4.5). The source
// preserves both ranges as given rather than unifying them (spec §9's
// design note on DEPTH_RANGE).
var (
	templateDeltas = []int{0, -1, 1, -2, 2}
	treeDeltas     = []int{0, -1, 1}
)

// entry is the per-depth pair of ring buffers.
type entry struct {
	trees     ringBuffer[*ast.Node]
	templates ringBuffer[*template.Template]
}

// Cache is the depth-indexed compression cache.
type Cache struct {
	entries []*entry
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{}
}

func (c *Cache) entryAt(depth int) *entry {
	if depth < 0 {
		return nil
	}
	if depth >= len(c.entries) {
		return nil
	}
	return c.entries[depth]
}

func (c *Cache) ensure(depth int) *entry {
	for len(c.entries) <= depth {
		c.entries = append(c.entries, nil)
	}
	if c.entries[depth] == nil {
		c.entries[depth] = &entry{}
	}
	return c.entries[depth]
}

// PushTree appends node to the tree ring at depth, evicting the oldest
// entry if the ring is already at capacity.
func (c *Cache) PushTree(depth int, node *ast.Node) {
	c.ensure(depth).trees.push(node)
}

// PushTemplate appends tmpl to the template ring at depth, evicting the
// oldest entry if the ring is already at capacity.
func (c *Cache) PushTemplate(depth int, tmpl *template.Template) {
	c.ensure(depth).templates.push(tmpl)
}

// Kind distinguishes the two reference shapes a Match can describe.
type Kind int

const (
	// KindTemplate means the match found a reusable Template whose
	// cuts already describe every position the query diverges at.
	KindTemplate Kind = iota
	// KindTree means the match found a prior subtree of the same root
	// type, for which a fresh Template had to be computed.
	KindTree
)

// Match is the best back-reference search found at one depth, with
// enough information for the driver to emit the reference and recurse
// into substitutions (spec §4.5).
type Match struct {
	Kind         Kind
	Delta        int
	ReverseIndex int
	Benefit      int
	Cuts         []template.Cut
	// Template is set for both kinds: for KindTemplate it is the prior
	// template being referenced (so the driver knows it needn't push a
	// new one); for KindTree it is the freshly computed template the
	// driver should push at the end of this node's visit.
	Template *template.Template
}

// Search returns the best candidate reference for query at depth, or
// nil if no candidate yields a positive benefit (spec §4.5).
func (c *Cache) Search(depth int, query *ast.Node) *Match {
	var best *Match

	if m := c.searchTemplates(depth, query); m != nil {
		best = m
	}
	if m := c.searchTrees(depth, query); m != nil {
		if best == nil || m.Benefit > best.Benefit {
			best = m
		}
	}
	return best
}

func (c *Cache) searchTemplates(depth int, query *ast.Node) *Match {
	var best *Match
	for _, delta := range templateDeltas {
		entry := c.entryAt(depth + delta)
		if entry == nil {
			continue
		}
		ring := &entry.templates
		for i := ring.len() - 1; i >= 0; i-- {
			prior := ring.at(i)
			cuts, ok := prior.Matches(query)
			if !ok {
				continue
			}
			benefit := prior.Benefit()
			if benefit <= 0 {
				continue
			}
			if best == nil || benefit > best.Benefit {
				best = &Match{
					Kind:         KindTemplate,
					Delta:        delta,
					ReverseIndex: ring.len() - 1 - i,
					Benefit:      benefit,
					Cuts:         cuts,
					Template:     prior,
				}
			}
		}
	}
	return best
}

func (c *Cache) searchTrees(depth int, query *ast.Node) *Match {
	var best *Match
	for _, delta := range treeDeltas {
		entry := c.entryAt(depth + delta)
		if entry == nil {
			continue
		}
		ring := &entry.trees
		for i := ring.len() - 1; i >= 0; i-- {
			prior := ring.at(i)
			if prior.Type != query.Type {
				continue
			}
			tmpl := template.ComputeTemplate(prior, query)
			benefit := (tmpl.StepCount - tmpl.CutCount) - 1
			if benefit <= 0 {
				continue
			}
			if best == nil || benefit > best.Benefit {
				best = &Match{
					Kind:         KindTree,
					Delta:        delta,
					ReverseIndex: ring.len() - 1 - i,
					Benefit:      benefit,
					Cuts:         tmpl.Cuts,
					Template:     tmpl,
				}
			}
		}
	}
	return best
}
