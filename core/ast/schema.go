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

// FirstNodeTypeCode is the first node-type code handed out to a
// registered schema entry (spec §4.6: codes 0/1/2 are reserved for
// subtree ref / template ref / raw single-char identifier).
const FirstNodeTypeCode = 3

// FieldDesc describes one scalar attribute of a node type.
type FieldDesc struct {
	Name     string
	Array    bool
	Optional bool
	Deleted  bool
}

// BranchDesc describes one child/child-array relation of a node type.
type BranchDesc struct {
	Name     string
	Array    bool
	Optional bool
	Deleted  bool
}

// NodeType is a schema entry: a node's declared name, a short alias
// (consumed only by the --type-sorted CLI dump, see SPEC_FULL.md), and
// its ordered field/branch descriptors.
type NodeType struct {
	Name     string
	Alias    string
	Fields   []FieldDesc
	Branches []BranchDesc
	// Code is the wire-format node-type code (spec §4.6), assigned in
	// registration order starting at FirstNodeTypeCode.
	Code int
}

// FieldDesc looks up a field descriptor by name, or reports !ok.
func (t *NodeType) FieldDesc(name string) (FieldDesc, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDesc{}, false
}

// BranchDesc looks up a branch descriptor by name, or reports !ok.
func (t *NodeType) BranchDesc(name string) (BranchDesc, bool) {
	for _, b := range t.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return BranchDesc{}, false
}

// commonDeletedFields are stripped from every raw node regardless of
// type: some ESTree-family parsers attach a "start"/"end" byte-offset
// pair directly on nodes (in addition to the "range"/"loc" properties
// spec §4.1 already tolerates). Declaring them as deleted field
// descriptors, rather than silently tolerating them like range/loc or
// rejecting them like any other unknown property, exercises the
// deleted-descriptor machinery spec §3 defines (see SPEC_FULL.md).
var commonDeletedFields = []FieldDesc{
	{Name: "start", Deleted: true},
	{Name: "end", Deleted: true},
}

// Unknown is the sloppy fallback node type (spec §3: "an Unknown type
// is available as a sloppy fallback"). It declares no fields or
// branches: a node lifted as Unknown carries no structured data beyond
// its raw type name, which is preserved on Node.RawType.
var Unknown = &NodeType{Name: "Unknown", Alias: "unk"}

// Registry is the compile-time-declared set of node types (spec §2
// item 1, §4.1). It is built once by NewRegistry and never mutated
// afterwards.
type Registry struct {
	byName map[string]*NodeType
	all    []*NodeType
}

// NewRegistry builds a Registry from an ordered list of node types,
// assigning each a wire-format Code in registration order. The order
// given here is the order node-type codes are handed out, so it is
// part of the wire format's stability contract (spec §6: "Reserved
// node-type codes... ≥ 3 = registered node types in registry order").
func NewRegistry(types []*NodeType) *Registry {
	r := &Registry{byName: make(map[string]*NodeType, len(types))}
	for i, t := range types {
		t.Code = FirstNodeTypeCode + i
		for _, cf := range commonDeletedFields {
			if _, ok := t.FieldDesc(cf.Name); !ok {
				t.Fields = append(t.Fields, cf)
			}
		}
		r.byName[t.Name] = t
		r.all = append(r.all, t)
	}
	return r
}

// Lookup returns the node type registered under name, or !ok.
func (r *Registry) Lookup(name string) (*NodeType, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// All returns every registered node type in registration (code) order.
// The returned slice must not be mutated by callers.
func (r *Registry) All() []*NodeType {
	return r.all
}
