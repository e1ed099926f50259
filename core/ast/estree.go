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

// ECMAScriptNodeTypes returns the concrete node type list SPEC_FULL.md
// fixes for the "common ECMAScript node set" spec §6 names but leaves
// to "the source schema table". Declaration order here is the wire
// node-type code order (spec §4.6, §6): changing this order changes
// the wire format, so it is fixed once and not derived from any
// external manifest.
func ECMAScriptNodeTypes() []*NodeType {
	f := func(name string, array, optional bool) FieldDesc {
		return FieldDesc{Name: name, Array: array, Optional: optional}
	}
	b := func(name string, array, optional bool) BranchDesc {
		return BranchDesc{Name: name, Array: array, Optional: optional}
	}

	return []*NodeType{
		{Name: "Program", Alias: "prog",
			Fields:   []FieldDesc{f("sourceType", false, false)},
			Branches: []BranchDesc{b("body", true, false)},
		},
		{Name: "Identifier", Alias: "id",
			Fields: []FieldDesc{f("name", false, false)},
		},
		{Name: "PrivateIdentifier", Alias: "priv",
			Fields: []FieldDesc{f("name", false, false)},
		},
		{Name: "Literal", Alias: "lit",
			Fields: []FieldDesc{
				f("value", false, true),
				f("raw", false, true),
				f("regex", false, true),
			},
		},
		{Name: "ExpressionStatement", Alias: "exst",
			Branches: []BranchDesc{b("expression", false, false)},
		},
		{Name: "BlockStatement", Alias: "blk",
			Branches: []BranchDesc{b("body", true, false)},
		},
		{Name: "EmptyStatement", Alias: "empt"},
		{Name: "VariableDeclaration", Alias: "vdcl",
			Fields:   []FieldDesc{f("kind", false, false)},
			Branches: []BranchDesc{b("declarations", true, false)},
		},
		{Name: "VariableDeclarator", Alias: "vdr",
			Branches: []BranchDesc{
				b("id", false, false),
				b("init", false, true),
			},
		},
		{Name: "FunctionDeclaration", Alias: "fdcl",
			Fields: []FieldDesc{
				f("generator", false, false),
				f("async", false, false),
			},
			Branches: []BranchDesc{
				b("id", false, true),
				b("params", true, false),
				b("body", false, false),
			},
		},
		{Name: "ReturnStatement", Alias: "ret",
			Branches: []BranchDesc{b("argument", false, true)},
		},
		{Name: "IfStatement", Alias: "if",
			Branches: []BranchDesc{
				b("test", false, false),
				b("consequent", false, false),
				b("alternate", false, true),
			},
		},
		{Name: "ForStatement", Alias: "for",
			Branches: []BranchDesc{
				b("init", false, true),
				b("test", false, true),
				b("update", false, true),
				b("body", false, false),
			},
		},
		{Name: "ForInStatement", Alias: "forin",
			Branches: []BranchDesc{
				b("left", false, false),
				b("right", false, false),
				b("body", false, false),
			},
		},
		{Name: "ForOfStatement", Alias: "forof",
			Fields: []FieldDesc{f("await", false, false)},
			Branches: []BranchDesc{
				b("left", false, false),
				b("right", false, false),
				b("body", false, false),
			},
		},
		{Name: "WhileStatement", Alias: "whl",
			Branches: []BranchDesc{
				b("test", false, false),
				b("body", false, false),
			},
		},
		{Name: "DoWhileStatement", Alias: "dowh",
			Branches: []BranchDesc{
				b("body", false, false),
				b("test", false, false),
			},
		},
		{Name: "BreakStatement", Alias: "brk",
			Branches: []BranchDesc{b("label", false, true)},
		},
		{Name: "ContinueStatement", Alias: "cont",
			Branches: []BranchDesc{b("label", false, true)},
		},
		{Name: "LabeledStatement", Alias: "lbl",
			Branches: []BranchDesc{
				b("label", false, false),
				b("body", false, false),
			},
		},
		{Name: "SwitchStatement", Alias: "swch",
			Branches: []BranchDesc{
				b("discriminant", false, false),
				b("cases", true, false),
			},
		},
		{Name: "SwitchCase", Alias: "case",
			Branches: []BranchDesc{
				b("test", false, true),
				b("consequent", true, false),
			},
		},
		{Name: "ThrowStatement", Alias: "thrw",
			Branches: []BranchDesc{b("argument", false, false)},
		},
		{Name: "TryStatement", Alias: "try",
			Branches: []BranchDesc{
				b("block", false, false),
				b("handler", false, true),
				b("finalizer", false, true),
			},
		},
		{Name: "CatchClause", Alias: "catch",
			Branches: []BranchDesc{
				b("param", false, true),
				b("body", false, false),
			},
		},
		{Name: "BinaryExpression", Alias: "bin",
			Fields: []FieldDesc{f("operator", false, false)},
			Branches: []BranchDesc{
				b("left", false, false),
				b("right", false, false),
			},
		},
		{Name: "LogicalExpression", Alias: "log",
			Fields: []FieldDesc{f("operator", false, false)},
			Branches: []BranchDesc{
				b("left", false, false),
				b("right", false, false),
			},
		},
		{Name: "UnaryExpression", Alias: "un",
			Fields: []FieldDesc{
				f("operator", false, false),
				f("prefix", false, false),
			},
			Branches: []BranchDesc{b("argument", false, false)},
		},
		{Name: "UpdateExpression", Alias: "upd",
			Fields: []FieldDesc{
				f("operator", false, false),
				f("prefix", false, false),
			},
			Branches: []BranchDesc{b("argument", false, false)},
		},
		{Name: "AssignmentExpression", Alias: "asgn",
			Fields: []FieldDesc{f("operator", false, false)},
			Branches: []BranchDesc{
				b("left", false, false),
				b("right", false, false),
			},
		},
		{Name: "ConditionalExpression", Alias: "cond",
			Branches: []BranchDesc{
				b("test", false, false),
				b("consequent", false, false),
				b("alternate", false, false),
			},
		},
		{Name: "CallExpression", Alias: "call",
			Fields: []FieldDesc{f("optional", false, false)},
			Branches: []BranchDesc{
				b("callee", false, false),
				b("arguments", true, false),
			},
		},
		{Name: "NewExpression", Alias: "new",
			Branches: []BranchDesc{
				b("callee", false, false),
				b("arguments", true, false),
			},
		},
		{Name: "MemberExpression", Alias: "mem",
			Fields: []FieldDesc{
				f("computed", false, false),
				f("optional", false, false),
			},
			Branches: []BranchDesc{
				b("object", false, false),
				b("property", false, false),
			},
		},
		{Name: "ArrayExpression", Alias: "arr",
			Branches: []BranchDesc{b("elements", true, false)},
		},
		{Name: "ObjectExpression", Alias: "obj",
			Branches: []BranchDesc{b("properties", true, false)},
		},
		{Name: "Property", Alias: "prop",
			Fields: []FieldDesc{
				f("kind", false, false),
				f("computed", false, false),
				f("shorthand", false, false),
				f("method", false, false),
			},
			Branches: []BranchDesc{
				b("key", false, false),
				b("value", false, false),
			},
		},
		{Name: "SpreadElement", Alias: "spread",
			Branches: []BranchDesc{b("argument", false, false)},
		},
		{Name: "SequenceExpression", Alias: "seq",
			Branches: []BranchDesc{b("expressions", true, false)},
		},
		{Name: "FunctionExpression", Alias: "fexp",
			Fields: []FieldDesc{
				f("generator", false, false),
				f("async", false, false),
			},
			Branches: []BranchDesc{
				b("id", false, true),
				b("params", true, false),
				b("body", false, false),
			},
		},
		{Name: "ArrowFunctionExpression", Alias: "arrow",
			Fields: []FieldDesc{
				f("generator", false, false),
				f("async", false, false),
				f("expression", false, false),
			},
			Branches: []BranchDesc{
				b("params", true, false),
				b("body", false, false),
			},
		},
		{Name: "TemplateLiteral", Alias: "tmpl",
			Branches: []BranchDesc{
				b("quasis", true, false),
				b("expressions", true, false),
			},
		},
		{Name: "TemplateElement", Alias: "tmplel",
			Fields: []FieldDesc{
				f("tail", false, false),
				f("cooked", false, true),
				f("raw", false, false),
			},
		},
		{Name: "TaggedTemplateExpression", Alias: "tagt",
			Branches: []BranchDesc{
				b("tag", false, false),
				b("quasi", false, false),
			},
		},
		{Name: "ClassDeclaration", Alias: "cdcl",
			Branches: []BranchDesc{
				b("id", false, true),
				b("superClass", false, true),
				b("body", false, false),
			},
		},
		{Name: "ClassExpression", Alias: "cexp",
			Branches: []BranchDesc{
				b("id", false, true),
				b("superClass", false, true),
				b("body", false, false),
			},
		},
		{Name: "MethodDefinition", Alias: "mdef",
			Fields: []FieldDesc{
				f("kind", false, false),
				f("computed", false, false),
				f("static", false, false),
			},
			Branches: []BranchDesc{
				b("key", false, false),
				b("value", false, false),
			},
		},
		{Name: "ClassBody", Alias: "cbody",
			Branches: []BranchDesc{b("body", true, false)},
		},
		{Name: "ExportNamedDeclaration", Alias: "expn",
			Branches: []BranchDesc{
				b("declaration", false, true),
				b("specifiers", true, false),
				b("source", false, true),
			},
		},
		{Name: "ExportDefaultDeclaration", Alias: "expd",
			Branches: []BranchDesc{b("declaration", false, false)},
		},
		{Name: "ExportAllDeclaration", Alias: "expa",
			Branches: []BranchDesc{
				b("source", false, false),
				b("exported", false, true),
			},
		},
		{Name: "ImportDeclaration", Alias: "impd",
			Branches: []BranchDesc{
				b("specifiers", true, false),
				b("source", false, false),
			},
		},
		{Name: "ImportSpecifier", Alias: "imps",
			Branches: []BranchDesc{
				b("imported", false, false),
				b("local", false, false),
			},
		},
		{Name: "ImportDefaultSpecifier", Alias: "impds",
			Branches: []BranchDesc{b("local", false, false)},
		},
		{Name: "ImportNamespaceSpecifier", Alias: "impns",
			Branches: []BranchDesc{b("local", false, false)},
		},
		{Name: "ExportSpecifier", Alias: "exps",
			Branches: []BranchDesc{
				b("local", false, false),
				b("exported", false, false),
			},
		},
	}
}

// NewECMAScriptRegistry builds the registry THE CORE compiles against.
func NewECMAScriptRegistry() *Registry {
	return NewRegistry(ECMAScriptNodeTypes())
}
