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

import "sort"

// ChildSlot holds the value of one branch: either a single child node,
// an ordered array of child nodes, or nothing (spec §3: "children_map
// maps each non-deleted branch name to either a single child node,
// null (if optional), or an ordered list of child nodes (if array)").
type ChildSlot struct {
	Array bool
	Node  *Node   // set when !Array and non-nil
	Nodes []*Node // set when Array (may be empty, never nil once present)
}

// Empty reports whether the slot holds neither a node nor a (non-nil)
// array.
func (c ChildSlot) Empty() bool {
	return !c.Array && c.Node == nil && c.Nodes == nil
}

// ParentEdge is a non-owning back-reference from a child to its parent
// (spec §3: "Written exactly once... never owns the parent").
type ParentEdge struct {
	Parent      *Node
	Branch      string
	DisplayName string
}

// Attrs carries walk-assigned metadata (spec §3).
type Attrs struct {
	// Number is the pre-order index assigned by DepthFirstNumber,
	// unique within one traversal.
	Number int
	// Depth is the length of the parent chain; root is 0.
	Depth int
}

// Node is a typed, schema-validated AST node (spec §3).
type Node struct {
	Type     *NodeType
	Fields   map[string]Value
	Children map[string]ChildSlot
	Parent   *ParentEdge
	Attrs    Attrs

	// RawType preserves the original raw "type" string for nodes
	// lifted against the Unknown schema entry (see schema.go).
	RawType string
}

// newNode allocates a Node of the given type with empty field/children
// maps, ready for the lifter to populate.
func newNode(t *NodeType) *Node {
	return &Node{
		Type:     t,
		Fields:   make(map[string]Value),
		Children: make(map[string]ChildSlot),
	}
}

// FieldNames returns the sorted set of field names actually present on
// n (used by the template matcher's field_names cut, spec §4.4 step 3).
func (n *Node) FieldNames() []string {
	names := make([]string, 0, len(n.Fields))
	for name := range n.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BranchNames returns the sorted set of branch names actually present
// on n (used by the template matcher's child_names cut, spec §4.4
// step 5).
func (n *Node) BranchNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
