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

import (
	"fmt"

	"go.uber.org/multierr"

	"astcompress/common"
)

// tolerated is the set of raw properties every node is allowed to carry
// that are neither "type" nor a declared field/branch (spec §4.1).
var tolerated = map[string]bool{
	"type":  true,
	"range": true,
	"loc":   true,
}

// LiftMust promotes a raw untyped node object into a typed, schema
// validated Node (spec §4.1's lift_must). It recurses into children per
// the type's declared branch order.
func (r *Registry) LiftMust(raw map[string]interface{}) (*Node, error) {
	rawType, err := rawTypeOf(raw)
	if err != nil {
		return nil, err
	}
	t, ok := r.Lookup(rawType)
	if !ok {
		return nil, &common.UnknownTypeError{RawType: rawType}
	}
	return r.build(t, raw, true)
}

// LiftSloppy promotes a raw untyped node object into a Node, falling
// back to the Unknown type when no schema matches, and performing no
// verification (spec §4.1's lift_sloppy): missing fields/branches are
// simply absent rather than erroring, and unrecognized properties are
// ignored.
func (r *Registry) LiftSloppy(raw map[string]interface{}) (*Node, error) {
	rawType, err := rawTypeOf(raw)
	if err != nil {
		return nil, err
	}
	t, ok := r.Lookup(rawType)
	if !ok {
		n := newNode(Unknown)
		n.RawType = rawType
		return n, nil
	}
	return r.build(t, raw, false)
}

func rawTypeOf(raw map[string]interface{}) (string, error) {
	v, ok := raw["type"]
	if !ok {
		return "", fmt.Errorf("raw node missing required %q property", "type")
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("raw node %q property is not a string", "type")
	}
	return s, nil
}

// build constructs a Node of type t from raw. When strict is true, every
// schema violation (spec §7's UnknownProperty/MissingField/
// MissingBranch/ArrayShapeMismatch) is collected and returned combined
// via multierr rather than failing on the first one found, so a single
// lift_must call reports every problem with a malformed raw node at
// once. When strict is false, the same code paths simply skip absent or
// unrecognized data instead of recording an error; a field value that
// cannot be converted, or an array-branch element that is not a node
// object, is still an error in both modes.
func (r *Registry) build(t *NodeType, raw map[string]interface{}, strict bool) (*Node, error) {
	n := newNode(t)
	var errs error

	for _, fd := range t.Fields {
		if fd.Deleted {
			continue
		}
		rawVal, present := raw[fd.Name]
		if !present || rawVal == nil {
			if !fd.Optional && strict {
				errs = multierr.Append(errs, &common.MissingFieldError{TypeName: t.Name, FieldName: fd.Name})
			}
			continue
		}
		arr, isArr := rawVal.([]interface{})
		if isArr != fd.Array {
			if strict {
				errs = multierr.Append(errs, &common.ArrayShapeMismatchError{TypeName: t.Name, Name: fd.Name, WantsArr: fd.Array})
			}
			continue
		}
		if fd.Array {
			items := make([]Value, 0, len(arr))
			for _, elem := range arr {
				v, err := ValueFromRaw(elem)
				if err != nil {
					errs = multierr.Append(errs, err)
					continue
				}
				items = append(items, v)
			}
			n.Fields[fd.Name] = Array{Items: items}
		} else {
			v, err := ValueFromRaw(rawVal)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			n.Fields[fd.Name] = v
		}
	}

	for _, bd := range t.Branches {
		if bd.Deleted {
			continue
		}
		slot, present, err := r.buildBranch(n, bd, raw[bd.Name], strict)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if present {
			n.Children[bd.Name] = slot
		}
	}

	if strict {
		for key := range raw {
			if tolerated[key] {
				continue
			}
			if _, ok := t.FieldDesc(key); ok {
				continue
			}
			if _, ok := t.BranchDesc(key); ok {
				continue
			}
			errs = multierr.Append(errs, &common.UnknownPropertyError{TypeName: t.Name, PropertyName: key})
		}
	}

	if errs != nil {
		return nil, errs
	}
	return n, nil
}

// buildBranch lifts the raw value found (if any) for one branch
// descriptor, wiring parent edges on every child produced. The second
// return value reports whether the branch should be recorded in
// Node.Children at all: a present-but-empty array branch is recorded
// (so the walker's empty_array event, spec §4.2, can fire for it), a
// truly absent optional branch is not.
func (r *Registry) buildBranch(parent *Node, bd BranchDesc, raw interface{}, strict bool) (ChildSlot, bool, error) {
	if raw == nil {
		if !bd.Optional && strict {
			return ChildSlot{}, false, &common.MissingBranchError{TypeName: parent.Type.Name, BranchName: bd.Name}
		}
		return ChildSlot{}, false, nil
	}

	if arr, ok := raw.([]interface{}); ok {
		if !bd.Array {
			if strict {
				return ChildSlot{}, false, &common.ArrayShapeMismatchError{TypeName: parent.Type.Name, Name: bd.Name, WantsArr: false}
			}
			return ChildSlot{}, false, nil
		}
		nodes := make([]*Node, 0, len(arr))
		var errs error
		for i, elem := range arr {
			m, ok := elem.(map[string]interface{})
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("%s: branch %q element %d is absent or malformed", parent.Type.Name, bd.Name, i))
				continue
			}
			child, err := r.liftChild(m, strict)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			child.Parent = &ParentEdge{Parent: parent, Branch: bd.Name, DisplayName: fmt.Sprintf("%s[%d]", bd.Name, i)}
			nodes = append(nodes, child)
		}
		if errs != nil {
			return ChildSlot{}, false, errs
		}
		return ChildSlot{Array: true, Nodes: nodes}, true, nil
	}

	if bd.Array {
		if strict {
			return ChildSlot{}, false, &common.ArrayShapeMismatchError{TypeName: parent.Type.Name, Name: bd.Name, WantsArr: true}
		}
		return ChildSlot{}, false, nil
	}

	m, ok := raw.(map[string]interface{})
	if !ok {
		if strict {
			return ChildSlot{}, false, &common.ArrayShapeMismatchError{TypeName: parent.Type.Name, Name: bd.Name, WantsArr: false}
		}
		return ChildSlot{}, false, nil
	}
	child, err := r.liftChild(m, strict)
	if err != nil {
		return ChildSlot{}, false, err
	}
	child.Parent = &ParentEdge{Parent: parent, Branch: bd.Name, DisplayName: bd.Name}
	return ChildSlot{Node: child}, true, nil
}

func (r *Registry) liftChild(raw map[string]interface{}, strict bool) (*Node, error) {
	if strict {
		return r.LiftMust(raw)
	}
	return r.LiftSloppy(raw)
}
