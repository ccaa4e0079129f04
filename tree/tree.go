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

// Package tree implements the labeled n-ary Tree used as the output of
// parsing: leaves are token.Tokens, interior nodes are *Tree values
// carrying a group label and an ordered list of children.
//
// Tree is a plain struct with a Children slice holding a Node sum type
// (token.Token or *Tree), since Go has no builtin list type to subclass.
package tree

import (
	"fmt"
	"strings"

	"github.com/aboutcode-org/pygmars/token"
)

// Node is either a token.Token (a leaf) or a *Tree (an interior node).
// Any other dynamic type is a programming error and functions in this
// package panic rather than silently misbehave.
type Node interface{}

// Tree is a labeled, ordered grouping of leaves (token.Token) and
// subtrees (*Tree). Label is never empty.
type Tree struct {
	Label    string
	Children []Node
}

// New constructs a Tree, rejecting an empty label: every Tree must carry
// a non-empty label.
func New(label string, children []Node) (*Tree, error) {
	if label == "" {
		return nil, fmt.Errorf("tree: empty label")
	}
	return &Tree{Label: label, Children: children}, nil
}

// LabelOf returns the label of a Node, which must be a token.Token or a
// *Tree. Other packages building or walking ParseStrings use this to stay
// agnostic of the Node sum type's concrete cases.
func LabelOf(n Node) string {
	switch v := n.(type) {
	case token.Token:
		return v.Label
	case *Tree:
		return v.Label
	default:
		panic(fmt.Sprintf("tree: invalid node type %T", n))
	}
}

// Leaves returns all token.Tokens in this tree, in left-to-right order.
func (t *Tree) Leaves() []token.Token {
	var out []token.Token
	for _, child := range t.Children {
		switch v := child.(type) {
		case token.Token:
			out = append(out, v)
		case *Tree:
			out = append(out, v.Leaves()...)
		default:
			panic(fmt.Sprintf("tree: invalid node type %T", child))
		}
	}
	return out
}

// Flatten returns a tree of depth at most 2 with the same label and the
// same leaves as t, in order, with all grouping structure removed.
func (t *Tree) Flatten() *Tree {
	leaves := t.Leaves()
	children := make([]Node, len(leaves))
	for i, leaf := range leaves {
		children[i] = leaf
	}
	return &Tree{Label: t.Label, Children: children}
}

// GetAt resolves a tree position: an empty path returns t itself; a
// non-empty path descends child indices in turn. Descending through a
// leaf (a token.Token) is an error.
func (t *Tree) GetAt(path []int) (Node, error) {
	if len(path) == 0 {
		return t, nil
	}
	idx := path[0]
	if idx < 0 || idx >= len(t.Children) {
		return nil, fmt.Errorf("tree: index %d out of range (%d children)", idx, len(t.Children))
	}
	child := t.Children[idx]
	if len(path) == 1 {
		return child, nil
	}
	subtree, ok := child.(*Tree)
	if !ok {
		return nil, fmt.Errorf("tree: cannot descend into leaf at position %v", path)
	}
	return subtree.GetAt(path[1:])
}

// SetAt assigns value at the given non-empty tree position. The root
// position () may not be assigned to.
func (t *Tree) SetAt(path []int, value Node) error {
	if len(path) == 0 {
		return fmt.Errorf("tree: the root position () may not be assigned to")
	}
	idx := path[0]
	if idx < 0 || idx >= len(t.Children) {
		return fmt.Errorf("tree: index %d out of range (%d children)", idx, len(t.Children))
	}
	if len(path) == 1 {
		t.Children[idx] = value
		return nil
	}
	subtree, ok := t.Children[idx].(*Tree)
	if !ok {
		return fmt.Errorf("tree: cannot descend into leaf at position %v", path)
	}
	return subtree.SetAt(path[1:], value)
}

// String renders the canonical bracketed printed form:
// "(LABEL child1 child2 …)" where a Token child renders as "value/LABEL"
// and a Tree child recurses. This form is a rendering concern, not a
// semantic one.
func (t *Tree) String() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t *Tree) writeTo(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(t.Label)
	for _, child := range t.Children {
		b.WriteByte(' ')
		switch v := child.(type) {
		case token.Token:
			b.WriteString(v.Serialized())
		case *Tree:
			v.writeTo(b)
		default:
			panic(fmt.Sprintf("tree: invalid node type %T", child))
		}
	}
	b.WriteByte(')')
}

// DebugString renders a multi-line, indented representation of t,
// intended for tracing/debugging rather than round-tripping.
func (t *Tree) DebugString() string {
	var b strings.Builder
	t.debugTo(&b, 0)
	return b.String()
}

func (t *Tree) debugTo(b *strings.Builder, indent int) {
	fmt.Fprintf(b, "(label=%q, children=(", t.Label)
	for _, child := range t.Children {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", indent+2))
		switch v := child.(type) {
		case token.Token:
			b.WriteString(v.Serialized())
		case *Tree:
			v.debugTo(b, indent+2)
		default:
			panic(fmt.Sprintf("tree: invalid node type %T", child))
		}
	}
	b.WriteString("))")
}
