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

package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"astcompress/core/ast"
	"astcompress/core/template"
)

func identNode(t *testing.T, name string) *ast.Node {
	t.Helper()
	n, err := ast.NewECMAScriptRegistry().LiftMust(map[string]interface{}{
		"type": "Identifier", "name": name,
	})
	require.NoError(t, err)
	return n
}

func binExprNode(t *testing.T, op string) *ast.Node {
	t.Helper()
	n, err := ast.NewECMAScriptRegistry().LiftMust(map[string]interface{}{
		"type": "BinaryExpression", "operator": op,
		"left":  map[string]interface{}{"type": "Identifier", "name": "a"},
		"right": map[string]interface{}{"type": "Identifier", "name": "b"},
	})
	require.NoError(t, err)
	return n
}

func TestRingBuffer_EvictsAtWidth(t *testing.T) {
	var r ringBuffer[int]
	for i := 0; i < Width+5; i++ {
		r.push(i)
	}
	require.Equal(t, Width, r.len())
	require.Equal(t, 5, r.at(0))
	require.Equal(t, Width+4, r.at(r.len()-1))
}

func TestCache_Search_EmptyReturnsNil(t *testing.T) {
	c := New()
	require.Nil(t, c.Search(0, identNode(t, "x")))
}

func TestCache_Search_TreeMatch(t *testing.T) {
	c := New()
	c.PushTree(3, binExprNode(t, "+"))

	m := c.Search(3, binExprNode(t, "-"))
	require.NotNil(t, m)
	require.Equal(t, KindTree, m.Kind)
	require.Equal(t, 0, m.Delta)
	require.Equal(t, 0, m.ReverseIndex)
	require.Greater(t, m.Benefit, 0)
	require.Len(t, m.Cuts, 1)
}

func TestCache_Search_NoMatchForDifferentType(t *testing.T) {
	c := New()
	c.PushTree(3, identNode(t, "x"))

	m := c.Search(3, binExprNode(t, "-"))
	require.Nil(t, m)
}

func TestCache_Search_ProbesNeighboringDepths(t *testing.T) {
	c := New()
	c.PushTree(2, binExprNode(t, "+"))

	m := c.Search(3, binExprNode(t, "-"))
	require.NotNil(t, m)
	require.Equal(t, -1, m.Delta)
}

func TestCache_Search_TemplatePreferredOverTreeOnTie(t *testing.T) {
	c := New()
	// A cut-free template and its own origin tree score the same benefit
	// (step_count - 1) against an identical query.
	origin := binExprNode(t, "+")
	tmpl := template.ComputeTemplate(origin, binExprNode(t, "+"))

	c.PushTemplate(1, tmpl)
	c.PushTree(1, origin)

	got := c.Search(1, binExprNode(t, "+"))
	require.NotNil(t, got)
	require.Equal(t, KindTemplate, got.Kind)
}

func TestCache_Search_ReverseIndexCountsFromNewest(t *testing.T) {
	c := New()
	c.PushTree(0, binExprNode(t, "+"))
	c.PushTree(0, binExprNode(t, "-"))

	m := c.Search(0, binExprNode(t, "*"))
	require.NotNil(t, m)
	require.Equal(t, 0, m.ReverseIndex, "newest prior tree should be reverse index 0")
}

func TestCache_PushTemplate_IsSearchedAtExactDepth(t *testing.T) {
	c := New()
	origin := binExprNode(t, "+")
	query := binExprNode(t, "-")
	tmpl := template.ComputeTemplate(origin, query)
	c.PushTemplate(5, tmpl)

	require.NotNil(t, c.Search(5, binExprNode(t, "*")))
	require.Nil(t, c.Search(9, binExprNode(t, "*")))
}
