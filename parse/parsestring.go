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

package parse

import (
	"regexp"
	"strings"

	"github.com/aboutcode-org/pygmars/tree"
)

// wellFormedRe matches a string composed solely of "<label>" atoms, each
// optionally wrapped by at most one opening and/or closing curly brace.
// It does not by itself rule out unbalanced or nested braces across the
// whole string; hasBalancedNonNestedBraces checks that separately.
var wellFormedRe = regexp.MustCompile(`^(\{?<[^{}<>]+?>\}?)*$`)

// delimRunRe splits a parse string on runs of its four delimiter
// characters, recovering the bare label sequence.
var delimRunRe = regexp.MustCompile(`[{}<>]+`)

// braceCharRe splits a parse string on individual brace characters,
// alternating the pieces outside and inside a group.
var braceCharRe = regexp.MustCompile(`[{}]`)

// ParseString is the working representation a Rule transforms: the
// interior level of a tree, encoded as a string of "<LABEL>" atoms with
// "{" "}" marking groups a rule has matched, plus the flat list of the
// tree's original children (pieces) that the atoms stand for. Keeping
// the string and the pieces separate lets a regex substitution on the
// string be verified and then replayed onto the untouched child nodes.
type ParseString struct {
	parseString string
	pieces      []tree.Node
	rootLabel   string
	debugLevel  int
}

// NewParseString builds a ParseString from the interior of t: every
// child of t becomes one piece, encoded in parseString as "<LABEL>".
// debugLevel controls how much verification ApplyTransform and ToTree
// perform (0: none, 1: verify on ToTree only, 2+: verify after every
// ApplyTransform, 3: also verify the label sequence is unchanged).
func NewParseString(t *tree.Tree, debugLevel int) *ParseString {
	pieces := append([]tree.Node(nil), t.Children...)
	var b strings.Builder
	for _, p := range pieces {
		b.WriteByte('<')
		b.WriteString(tree.LabelOf(p))
		b.WriteByte('>')
	}
	return &ParseString{
		parseString: b.String(),
		pieces:      pieces,
		rootLabel:   t.Label,
		debugLevel:  debugLevel,
	}
}

// Transformer maps the current encoded string to a new one; a Rule's
// substitution is one, but the type is exported so callers (and tests)
// can drive ApplyTransform directly.
type Transformer func(string) (string, error)

// ApplyTransform runs transform over the current encoding, collapses any
// now-empty groups it introduced ("{}" -> ""), and -- depending on
// debugLevel -- verifies the result still satisfies the ParseString
// invariants before accepting it.
func (ps *ParseString) ApplyTransform(transform Transformer) error {
	next, err := transform(ps.parseString)
	if err != nil {
		return err
	}
	next = strings.ReplaceAll(next, "{}", "")

	if ps.debugLevel >= 2 {
		if err := ps.verify(next, ps.debugLevel >= 3); err != nil {
			return err
		}
	}
	ps.parseString = next
	return nil
}

// verify checks that s is well-formed (only "<label>" atoms and balanced,
// non-nested grouping braces) and, if checkLabels is set, that its label
// sequence is exactly the labels of ps.pieces, in order -- i.e. that the
// transform only added/removed grouping braces and never touched,
// reordered, or dropped a label atom.
func (ps *ParseString) verify(s string, checkLabels bool) error {
	if !wellFormedRe.MatchString(s) {
		return &ParseStringCorruptionError{
			ParseString: s,
			Reason:      "not composed solely of <label> atoms and single-level {...} groups",
		}
	}
	if !hasBalancedNonNestedBraces(s) {
		return &ParseStringCorruptionError{
			ParseString: s,
			Reason:      "grouping braces are unbalanced or nested",
		}
	}
	if checkLabels {
		got := labelSequence(s)
		want := make([]string, len(ps.pieces))
		for i, p := range ps.pieces {
			want[i] = tree.LabelOf(p)
		}
		if !equalStrings(got, want) {
			return &ParseStringCorruptionError{
				ParseString: s,
				Reason:      "label sequence no longer matches the original tokens",
			}
		}
	}
	return nil
}

// hasBalancedNonNestedBraces reports whether s's "{" / "}" characters
// form only one-level-deep, properly closed groups: brace depth must
// never exceed 1 and must return to 0 by the end of the string.
func hasBalancedNonNestedBraces(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
			if depth > 1 {
				return false
			}
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// labelSequence recovers the bare ordered label list ("DT", "JJ", "NN",
// ...) encoded by a parse string, discarding grouping structure.
func labelSequence(s string) []string {
	parts := delimRunRe.Split(s, -1)
	if len(parts) < 2 {
		return nil
	}
	return parts[1 : len(parts)-1]
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ToTree replays the current grouping structure back onto ps.pieces: a
// run of atoms inside "{...}" becomes one new *tree.Tree labeled
// groupLabel wrapping those pieces; atoms outside any group pass through
// unchanged. The result is wrapped in a tree labeled with ps's root
// label.
func (ps *ParseString) ToTree(groupLabel string) (*tree.Tree, error) {
	if ps.debugLevel > 0 {
		if err := ps.verify(ps.parseString, ps.debugLevel >= 1); err != nil {
			return nil, err
		}
	}

	var collected []tree.Node
	index := 0
	inGroup := false
	for _, piece := range braceCharRe.Split(ps.parseString, -1) {
		length := strings.Count(piece, "<")
		if index+length > len(ps.pieces) {
			return nil, &ParseStringCorruptionError{
				ParseString: ps.parseString,
				Reason:      "encodes more atoms than there are original pieces",
			}
		}
		subsequence := ps.pieces[index : index+length]
		if inGroup {
			grouped, err := tree.New(groupLabel, append([]tree.Node(nil), subsequence...))
			if err != nil {
				return nil, err
			}
			collected = append(collected, tree.Node(grouped))
		} else {
			collected = append(collected, subsequence...)
		}
		index += length
		inGroup = !inGroup
	}
	if index != len(ps.pieces) {
		return nil, &ParseStringCorruptionError{
			ParseString: ps.parseString,
			Reason:      "encodes fewer atoms than there are original pieces",
		}
	}

	return tree.New(ps.rootLabel, collected)
}

// raw returns the current encoded string, for use by tracing.
func (ps *ParseString) raw() string {
	return ps.parseString
}

// String renders a debug-only pretty-printed form with spaces inserted
// around tag and group boundaries, purely to make a trace listing easier
// to scan. It carries no semantic weight and is never parsed back.
func (ps *ParseString) String() string {
	var b strings.Builder
	runes := []rune(ps.parseString)
	for i, r := range runes {
		switch r {
		case '>':
			b.WriteRune(r)
			if i+1 < len(runes) && runes[i+1] != '}' {
				b.WriteByte(' ')
			}
		case '<':
			if i > 0 && runes[i-1] != '{' && runes[i-1] != ' ' {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
