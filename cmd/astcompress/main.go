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

// Command astcompress is the external collaborator described by spec
// §6: it owns the CLI surface, reads one raw-AST file, and drives the
// core library's dump and compression modes. The core package never
// parses flags or touches the filesystem itself.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"astcompress/compress"
	"astcompress/core/ast"
)

type modeFlag struct {
	name string
	on   *bool
	off  *bool
}

func (m modeFlag) enabled() bool {
	return *m.on && !*m.off
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr *os.File) error {
	fs := flag.NewFlagSet("astcompress", flag.ContinueOnError)
	fs.SetOutput(stderr)

	modes := []modeFlag{
		{name: "tokens"},
		{name: "ast"},
		{name: "lifted"},
		{name: "type-sorted"},
		{name: "compress"},
	}
	for i := range modes {
		m := &modes[i]
		m.on = fs.Bool(m.name, false, fmt.Sprintf("dump/produce %s output", m.name))
		m.off = fs.Bool("no-"+m.name, false, fmt.Sprintf("disable %s output", m.name))
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	var errs error
	if fs.NArg() != 1 {
		errs = multierr.Append(errs, fmt.Errorf("expected exactly one input file argument, got %d", fs.NArg()))
	}
	anySelected := false
	for _, m := range modes {
		if m.enabled() {
			anySelected = true
		}
	}
	if !anySelected {
		errs = multierr.Append(errs, fmt.Errorf("no mode selected: pass at least one of --tokens/--ast/--lifted/--type-sorted/--compress"))
	}
	if errs != nil {
		return errs
	}

	raw, err := readRawNode(fs.Arg(0))
	if err != nil {
		return err
	}

	registry := ast.NewECMAScriptRegistry()

	for _, m := range modes {
		if !m.enabled() {
			continue
		}
		if err := runMode(m.name, raw, registry, stdout); err != nil {
			return fmt.Errorf("%s: %w", m.name, err)
		}
	}
	return nil
}

func readRawNode(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func runMode(name string, raw map[string]interface{}, registry *ast.Registry, stdout *os.File) error {
	switch name {
	case "tokens":
		// Tokenization is the external parser collaborator's concern
		// (spec §6): this mode forwards whatever "tokens" array the
		// input file already carries, if any.
		return dumpYAML(stdout, raw["tokens"])
	case "ast":
		return dumpYAML(stdout, raw)
	case "lifted":
		n, err := registry.LiftMust(raw)
		if err != nil {
			return err
		}
		return dumpYAML(stdout, nodeToYAML(n))
	case "type-sorted":
		n, err := registry.LiftMust(raw)
		if err != nil {
			return err
		}
		return dumpYAML(stdout, typeSorted(n))
	case "compress":
		n, err := registry.LiftMust(raw)
		if err != nil {
			return err
		}
		out, err := compress.Compress(n)
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	default:
		return fmt.Errorf("unrecognized mode %q", name)
	}
}

func dumpYAML(stdout *os.File, v interface{}) error {
	enc := yaml.NewEncoder(stdout)
	defer enc.Close()
	return enc.Encode(v)
}

// nodeToYAML renders a lifted Node as a plain map/slice structure yaml
// can serialize directly, since ast.Value/ast.Node carry no yaml tags
// of their own (spec §6's dump modes are diagnostic, not part of the
// wire format).
func nodeToYAML(n *ast.Node) map[string]interface{} {
	out := map[string]interface{}{"type": n.Type.Name}
	if n.RawType != "" {
		out["rawType"] = n.RawType
	}
	fields := map[string]interface{}{}
	for _, fd := range n.Type.Fields {
		if fd.Deleted {
			continue
		}
		if v, ok := n.Fields[fd.Name]; ok {
			fields[fd.Name] = valueToYAML(v)
		}
	}
	if len(fields) > 0 {
		out["fields"] = fields
	}

	children := map[string]interface{}{}
	for _, bd := range n.Type.Branches {
		if bd.Deleted {
			continue
		}
		slot, ok := n.Children[bd.Name]
		if !ok {
			continue
		}
		if slot.Array {
			items := make([]interface{}, len(slot.Nodes))
			for i, c := range slot.Nodes {
				items[i] = nodeToYAML(c)
			}
			children[bd.Name] = items
		} else if slot.Node != nil {
			children[bd.Name] = nodeToYAML(slot.Node)
		}
	}
	if len(children) > 0 {
		out["children"] = children
	}
	return out
}

func valueToYAML(v ast.Value) interface{} {
	switch val := v.(type) {
	case ast.Null:
		return nil
	case ast.Bool:
		return val.V
	case ast.Int:
		return val.V
	case ast.Float:
		return val.V
	case ast.String:
		return val.V
	case ast.Array:
		items := make([]interface{}, len(val.Items))
		for i, item := range val.Items {
			items[i] = valueToYAML(item)
		}
		return items
	case ast.Map:
		m := make(map[string]interface{}, len(val.Items))
		for k, item := range val.Items {
			m[k] = valueToYAML(item)
		}
		return m
	default:
		return nil
	}
}

// typeSorted groups every node in the lifted tree by its type name,
// reporting each type's occurrence count and the node numbers (assigned
// by depth-first numbering) it appears at. This is a diagnostic view
// for spotting which node types dominate a tree, not a wire format.
func typeSorted(root *ast.Node) []map[string]interface{} {
	ast.DepthFirstNumber(root)
	counts := map[string][]int{}
	aliases := map[string]string{}
	var visit func(n *ast.Node)
	visit = func(n *ast.Node) {
		counts[n.Type.Name] = append(counts[n.Type.Name], n.Attrs.Number)
		aliases[n.Type.Name] = n.Type.Alias
		for _, bd := range n.Type.Branches {
			if bd.Deleted {
				continue
			}
			slot, ok := n.Children[bd.Name]
			if !ok {
				continue
			}
			if slot.Array {
				for _, c := range slot.Nodes {
					visit(c)
				}
			} else if slot.Node != nil {
				visit(slot.Node)
			}
		}
	}
	visit(root)

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	// alias is shown as a compact column next to the full type name
	// (SPEC_FULL.md: the only consumer of NodeType.Alias).
	out := make([]map[string]interface{}, len(names))
	for i, name := range names {
		out[i] = map[string]interface{}{
			"type":    name,
			"alias":   aliases[name],
			"count":   len(counts[name]),
			"numbers": counts[name],
		}
	}
	return out
}
