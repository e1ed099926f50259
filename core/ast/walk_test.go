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
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingVisitor struct {
	begins      []string
	ends        []string
	emptyArrays []string
	override    map[string][]Override
}

func (v *recordingVisitor) Begin(n *Node, attrs WalkAttrs) (BeginResult, error) {
	v.begins = append(v.begins, attrs.Name)
	if ovs, ok := v.override[attrs.Name]; ok {
		return BeginResult{Overrides: ovs}, nil
	}
	return Natural, nil
}

func (v *recordingVisitor) End(n *Node, attrs WalkAttrs) error {
	v.ends = append(v.ends, attrs.Name)
	return nil
}

func (v *recordingVisitor) EmptyArray(name string, parentAttrs WalkAttrs) error {
	v.emptyArrays = append(v.emptyArrays, name)
	return nil
}

func program(body ...*Node) *Node {
	r := NewECMAScriptRegistry()
	t, _ := r.Lookup("Program")
	n := newNode(t)
	n.Fields["sourceType"] = String{V: "script"}
	n.Children["body"] = ChildSlot{Array: true, Nodes: body}
	return n
}

func identifier(name string) *Node {
	r := NewECMAScriptRegistry()
	t, _ := r.Lookup("Identifier")
	n := newNode(t)
	n.Fields["name"] = String{V: name}
	return n
}

func TestWalk_NaturalTraversal(t *testing.T) {
	exprStmtType, _ := NewECMAScriptRegistry().Lookup("ExpressionStatement")
	exprStmt := newNode(exprStmtType)
	id := identifier("x")
	exprStmt.Children["expression"] = ChildSlot{Node: id}

	root := program(exprStmt)

	v := &recordingVisitor{}
	require.NoError(t, Walk(root, v))

	require.Equal(t, []string{"<root>", "body", "expression"}, v.begins)
	require.Equal(t, []string{"expression", "body", "<root>"}, v.ends)
}

func TestWalk_EmptyArrayFires(t *testing.T) {
	root := program()
	v := &recordingVisitor{}
	require.NoError(t, Walk(root, v))

	require.Equal(t, []string{"body"}, v.emptyArrays)
	require.Equal(t, []string{"<root>"}, v.begins)
}

func TestWalk_Prune(t *testing.T) {
	exprStmtType, _ := NewECMAScriptRegistry().Lookup("ExpressionStatement")
	exprStmt := newNode(exprStmtType)
	exprStmt.Children["expression"] = ChildSlot{Node: identifier("x")}
	root := program(exprStmt)

	v := &pruningVisitor{pruneAt: "body"}
	require.NoError(t, Walk(root, v))

	require.Equal(t, []string{"<root>", "body"}, v.begins)
	require.Equal(t, []string{"<root>"}, v.ends)
}

type pruningVisitor struct {
	pruneAt string
	begins  []string
	ends    []string
}

func (v *pruningVisitor) Begin(n *Node, attrs WalkAttrs) (BeginResult, error) {
	v.begins = append(v.begins, attrs.Name)
	if attrs.Name == v.pruneAt {
		return Pruned, nil
	}
	return Natural, nil
}

func (v *pruningVisitor) End(n *Node, attrs WalkAttrs) error {
	v.ends = append(v.ends, attrs.Name)
	return nil
}

func (v *pruningVisitor) EmptyArray(name string, parentAttrs WalkAttrs) error {
	return nil
}

func TestWalk_Overrides(t *testing.T) {
	exprStmtType, _ := NewECMAScriptRegistry().Lookup("ExpressionStatement")
	exprStmt := newNode(exprStmtType)
	exprStmt.Children["expression"] = ChildSlot{Node: identifier("x")}
	root := program(exprStmt)

	substitute := identifier("y")
	v := &recordingVisitor{override: map[string][]Override{
		"<root>": {{Name: "body", Array: true, Nodes: []*Node{substitute}}},
	}}
	require.NoError(t, Walk(root, v))

	require.Equal(t, []string{"<root>", "body"}, v.begins)
}
