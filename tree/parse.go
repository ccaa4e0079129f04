// SPDX-License-Identifier: Apache-2.0
// Copyright (C) nexB Inc. and others
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aboutcode-org/pygmars/token"
)

// bracketToken splits the canonical bracketed form into "(LABEL",
// ")" and leaf tokens: an open bracket plus label, a lone close bracket,
// or a bareword.
var bracketToken = regexp.MustCompile(`\([^\s()]*|\)|[^\s()]+`)

type bracketFrame struct {
	label    string
	children []Node
}

// ParseBracketed reads the canonical bracketed printed form produced by
// Tree.String (e.g. "(NP the/DT dog/NN)") and reconstructs a Tree. Leaves
// use the "value/LABEL" syntax that token.Token.Serialized produces.
func ParseBracketed(s string) (*Tree, error) {
	var stack []bracketFrame
	var result *Tree

	for _, tok := range bracketToken.FindAllString(s, -1) {
		switch {
		case tok == ")":
			if len(stack) == 0 {
				return nil, fmt.Errorf("tree: unexpected ')' in %q", s)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			node, err := New(top.label, top.children)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				if result != nil {
					return nil, fmt.Errorf("tree: more than one top-level tree in %q", s)
				}
				result = node
				continue
			}
			stack[len(stack)-1].children = append(stack[len(stack)-1].children, Node(node))
		case strings.HasPrefix(tok, "("):
			label := tok[1:]
			if label == "" {
				return nil, fmt.Errorf("tree: missing label after '(' in %q", s)
			}
			stack = append(stack, bracketFrame{label: label})
		default:
			if len(stack) == 0 {
				return nil, fmt.Errorf("tree: leaf %q outside any tree in %q", tok, s)
			}
			leaf, err := parseLeaf(tok)
			if err != nil {
				return nil, err
			}
			top := &stack[len(stack)-1]
			top.children = append(top.children, Node(leaf))
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("tree: unterminated tree(s) in %q", s)
	}
	if result == nil {
		return nil, fmt.Errorf("tree: empty input")
	}
	return result, nil
}

// parseLeaf reads the "value/LABEL" syntax Token.Serialized produces.
func parseLeaf(tok string) (token.Token, error) {
	idx := strings.LastIndex(tok, "/")
	if idx < 0 {
		return token.Token{}, fmt.Errorf("tree: leaf %q is missing a /LABEL suffix", tok)
	}
	value, label := tok[:idx], tok[idx+1:]
	return token.New(value, label, 0, 0), nil
}
