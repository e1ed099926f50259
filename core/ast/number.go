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

// DepthFirstNumber assigns Attrs.Number in pre-order starting at 0, and
// Attrs.Depth matching the parent chain (spec §4.1). Children are
// visited in declared branch order, with array branches visited in
// index order; this ordering is load-bearing since it must match the
// order the string collector and driver later use the lifted tree in.
func DepthFirstNumber(root *Node) {
	next := 0
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		n.Attrs.Number = next
		n.Attrs.Depth = depth
		next++
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
					visit(child, depth+1)
				}
			} else if slot.Node != nil {
				visit(slot.Node, depth+1)
			}
		}
	}
	visit(root, 0)
}
