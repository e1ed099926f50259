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

package ast

// WalkAttrs carries the per-visit metadata passed to a Visitor. Number
// is a monotone counter local to one Walk call (spec §4.2: "distinct
// from the one in §4.1 (walker-local)"); Name is the branch name the
// node was reached through, or "<root>" for the root.
type WalkAttrs struct {
	Number int
	Depth  int
	Name   string
}

// Override describes one overridden branch, used to reroute traversal
// through a template/subtree reference's substitutions (spec §4.2).
type Override struct {
	Name  string
	Array bool
	Node  *Node
	Nodes []*Node
}

// BeginResult is returned by Visitor.Begin to control how Walk proceeds
// into a node's children (spec §4.2): Prune skips the subtree
// entirely (and suppresses the matching End call); a non-nil Overrides
// replaces the node's natural children for this visit; otherwise (both
// zero) Walk descends into the node's own children in declared branch
// order.
type BeginResult struct {
	Prune     bool
	Overrides []Override
}

// Natural is the zero BeginResult: descend into the node's own
// children, emit End normally.
var Natural = BeginResult{}

// Pruned is the BeginResult that skips a subtree.
var Pruned = BeginResult{Prune: true}

// Visitor is the callback sequence a tree walk drives (spec §4.2).
type Visitor interface {
	Begin(n *Node, attrs WalkAttrs) (BeginResult, error)
	End(n *Node, attrs WalkAttrs) error
	EmptyArray(name string, parentAttrs WalkAttrs) error
}

// walkCounter is the walker-local monotone counter.
type walkCounter struct {
	next int
}

func (c *walkCounter) take() int {
	n := c.next
	c.next++
	return n
}

// Walk drives v over the tree rooted at root (spec §4.2). The root is
// visited with Name "<root>" and Depth 0.
func Walk(root *Node, v Visitor) error {
	c := &walkCounter{}
	return walk(root, "<root>", 0, c, v)
}

func walk(n *Node, name string, depth int, c *walkCounter, v Visitor) error {
	attrs := WalkAttrs{Number: c.take(), Depth: depth, Name: name}

	res, err := v.Begin(n, attrs)
	if err != nil {
		return err
	}
	if res.Prune {
		return nil
	}

	if res.Overrides != nil {
		for _, ov := range res.Overrides {
			if err := walkSlot(ChildSlot{Array: ov.Array, Node: ov.Node, Nodes: ov.Nodes}, ov.Name, depth, c, v, attrs); err != nil {
				return err
			}
		}
	} else {
		for _, bd := range n.Type.Branches {
			if bd.Deleted {
				continue
			}
			slot, ok := n.Children[bd.Name]
			if !ok {
				continue
			}
			if err := walkSlot(slot, bd.Name, depth, c, v, attrs); err != nil {
				return err
			}
		}
	}

	return v.End(n, attrs)
}

func walkSlot(slot ChildSlot, name string, depth int, c *walkCounter, v Visitor, parentAttrs WalkAttrs) error {
	if slot.Array {
		if len(slot.Nodes) == 0 {
			return v.EmptyArray(name, parentAttrs)
		}
		for _, child := range slot.Nodes {
			if err := walk(child, name, depth+1, c, v); err != nil {
				return err
			}
		}
		return nil
	}
	if slot.Node != nil {
		return walk(slot.Node, name, depth+1, c, v)
	}
	return nil
}
