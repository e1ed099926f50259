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

package encode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"astcompress/core/ast"
	"astcompress/core/strtab"
)

func TestWriteVarUint_SingleByte(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteVarUint(5))
	require.Equal(t, []byte{0x05}, w.Bytes())
}

func TestWriteVarUint_MultiByte(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteVarUint(300))
	// 300 = 0b1_0010_1100 -> low 7 bits 0x2C with continuation, then 0x02
	require.Equal(t, []byte{0xAC, 0x02}, w.Bytes())
}

func TestWriteVarUint_OverflowsUint32(t *testing.T) {
	w := NewWriter()
	err := w.WriteVarUint(uint64(1) << 33)
	require.Error(t, err)
}

func TestWriteStringTable_EmptyProgramScenario(t *testing.T) {
	// spec §8's worked example: a Program with sourceType "script" and
	// an empty body contributes exactly one string, "script".
	w := NewWriter()
	require.NoError(t, w.WriteStringTable([]string{"script"}))

	want := []byte{0x01, 0x06, 's', 'c', 'r', 'i', 'p', 't'}
	require.Equal(t, want, w.Bytes())
}

func TestWriteArrayLength_Short(t *testing.T) {
	w := NewWriter()
	w.WriteArrayLength(0)
	require.Equal(t, []byte{tagShortArray}, w.Bytes())
}

func TestWriteArrayLength_Long(t *testing.T) {
	w := NewWriter()
	w.WriteArrayLength(300)
	got := w.Bytes()
	require.Equal(t, byte(tagLongArray|0x01), got[0]) // 2-byte width
	require.Equal(t, []byte{0x2C, 0x01}, got[1:])
}

func TestWriteValue_NullBoolNanoInt(t *testing.T) {
	table := strtab.New()
	table.Finalize()

	w := NewWriter()
	require.NoError(t, w.WriteValue(ast.Null{}, table))
	require.NoError(t, w.WriteValue(ast.Bool{V: true}, table))
	require.NoError(t, w.WriteValue(ast.Bool{V: false}, table))
	require.NoError(t, w.WriteValue(ast.Int{V: 0}, table))
	require.NoError(t, w.WriteValue(ast.Int{V: -1}, table))
	require.NoError(t, w.WriteValue(ast.Int{V: 10}, table))

	require.Equal(t, []byte{
		tagNull,
		tagTrue,
		tagFalse,
		0 + nanoIntBias,
		byte(-1 + nanoIntBias),
		10 + nanoIntBias,
	}, w.Bytes())
}

func TestWriteValue_TaggedInt(t *testing.T) {
	table := strtab.New()
	table.Finalize()

	w := NewWriter()
	require.NoError(t, w.WriteValue(ast.Int{V: 1000}, table))

	got := w.Bytes()
	require.Equal(t, byte(tagIntBase|0x01), got[0]) // 2-byte width
	require.Equal(t, []byte{0xE8, 0x03}, got[1:])
}

func TestWriteValue_String(t *testing.T) {
	table := strtab.New()
	table.Add("hello")
	table.Finalize()

	w := NewWriter()
	require.NoError(t, w.WriteValue(ast.String{V: "hello"}, table))

	got := w.Bytes()
	require.Equal(t, byte(tagStringBase), got[0])
	require.Equal(t, []byte{0x00}, got[1:]) // rank 0, the only entry
}

func TestWriteValue_UnknownStringErrors(t *testing.T) {
	table := strtab.New()
	table.Finalize()

	w := NewWriter()
	err := w.WriteValue(ast.String{V: "nope"}, table)
	require.Error(t, err)
}

func TestWriteValue_FloatDigits(t *testing.T) {
	table := strtab.New()
	table.Finalize()

	w := NewWriter()
	require.NoError(t, w.WriteValue(ast.Float{V: 1.5}, table))

	got := w.Bytes()
	require.Equal(t, tagFloatDigits, int(got[0]))
	// "1.5" -> nibbles [1, 12(.), 5, 15(end)] packed as 2 bytes.
	require.Equal(t, []byte{0x1 | (nibbleDot << 4), 0x5 | (nibbleEnd << 4)}, got[1:])
}

func TestWriteValue_LargeIntFallsBackToFloatDigits(t *testing.T) {
	table := strtab.New()
	table.Finalize()

	w := NewWriter()
	require.NoError(t, w.WriteValue(ast.Int{V: int64(1) << 40}, table))
	require.Equal(t, tagFloatDigits, int(w.Bytes()[0]))
}

func TestWriteDirectNode_SingleCharIdentifier(t *testing.T) {
	n, err := ast.NewECMAScriptRegistry().LiftMust(map[string]interface{}{
		"type": "Identifier", "name": "x",
	})
	require.NoError(t, err)

	table := strtab.New()
	table.Finalize()

	w := NewWriter()
	require.NoError(t, w.WriteDirectNode(n, table))
	require.Equal(t, []byte{RawIdentCode, 'x'}, w.Bytes())
}

func TestWriteDirectNode_MultiCharIdentifierUsesTypeCode(t *testing.T) {
	n, err := ast.NewECMAScriptRegistry().LiftMust(map[string]interface{}{
		"type": "Identifier", "name": "foo",
	})
	require.NoError(t, err)

	table := strtab.New()
	table.AddIdentifier("foo")
	table.Finalize()

	w := NewWriter()
	require.NoError(t, w.WriteDirectNode(n, table))

	got := w.Bytes()
	require.Equal(t, byte(n.Type.Code), got[0])
	require.Equal(t, byte(tagStringBase), got[1])
}

func TestWriteSubtreeRef_RoundTripsShape(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteSubtreeRef(-1, 3, []int{5, 7}))

	want := []byte{SubtreeRefCode, byte(int8(-1)), 0x03, 0x05, 0x07, 0xFF}
	require.Equal(t, want, w.Bytes())
}

func TestWriteSubtreeRef_NoCuts(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteSubtreeRef(0, 0, nil))
	require.Equal(t, []byte{SubtreeRefCode, 0x00, 0x00, 0xFF}, w.Bytes())
}

func TestWriteTemplateRef(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteTemplateRef(2, 1))
	require.Equal(t, []byte{TemplateRefCode, 0x02, 0x01}, w.Bytes())
}

func TestWriteSubtreeRef_DeltaOutOfRange(t *testing.T) {
	w := NewWriter()
	err := w.WriteSubtreeRef(64, 0, nil)
	require.Error(t, err)
}

func TestWriteSubtreeRef_ReverseIndexOutOfRange(t *testing.T) {
	w := NewWriter()
	err := w.WriteSubtreeRef(0, 256, nil)
	require.Error(t, err)
}
