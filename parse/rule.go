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
	"fmt"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/aboutcode-org/pygmars/token"
	"github.com/aboutcode-org/pygmars/tree"
)

// betweenGroupsPattern is the zero-width assertion that keeps a rule's
// match from straddling an existing group boundary: it only matches at a
// position whose remaining text reaches a "{" or the end of string
// before any "}". Expressing it needs lookahead, which the standard
// library's RE2-based regexp package does not support, so Rule compiles
// its substitution regex through github.com/dlclark/regexp2 instead (the
// same backtracking engine AndrewCouncil-chroma's tree-sitter tooling
// depends on).
const betweenGroupsPattern = `(?=[^}]*(\{|$))`

// Rule is a single labeled grammar production: whenever Pattern matches a
// run of label atoms in a ParseString that is not already inside a
// group, that run is wrapped in a new group and, once replayed onto a
// tree via ToTree, becomes a *tree.Tree labeled Label.
type Rule struct {
	Pattern     string
	Label       string
	Description string

	re *regexp2.Regexp
}

var (
	ruleRegexCacheMu sync.Mutex
	ruleRegexCache   = map[string]*regexp2.Regexp{}
)

// compileRuleRegex compiles pattern into the wrapped, lookahead-guarded
// regexp2.Regexp a Rule substitutes with, caching by pattern text so
// that two rules sharing a pattern share one compiled regex.
func compileRuleRegex(pattern string) (*regexp2.Regexp, error) {
	ruleRegexCacheMu.Lock()
	if re, ok := ruleRegexCache[pattern]; ok {
		ruleRegexCacheMu.Unlock()
		return re, nil
	}
	ruleRegexCacheMu.Unlock()

	source, err := LabelPatternToRegex(pattern)
	if err != nil {
		return nil, err
	}
	wrapped := "(?<group>" + source + ")" + betweenGroupsPattern
	re, err := regexp2.Compile(wrapped, regexp2.None)
	if err != nil {
		return nil, &InvalidLabelPatternError{Pattern: pattern, Fragment: wrapped, Reason: err.Error()}
	}

	ruleRegexCacheMu.Lock()
	ruleRegexCache[pattern] = re
	ruleRegexCacheMu.Unlock()
	return re, nil
}

// NewRule validates and compiles a rule. label must be non-empty and
// already in canonical form (see token.Canonicalize); pattern must be a
// well-formed label pattern.
func NewRule(pattern, label, description string) (*Rule, error) {
	if label == "" {
		return nil, &InvalidGrammarLineError{Line: pattern, Reason: "rule label is empty"}
	}
	if label != token.Canonicalize(label) {
		return nil, &InvalidGrammarLineError{Line: label, Reason: fmt.Sprintf("label %q is not already in canonical form", label)}
	}
	if strings.TrimSpace(pattern) == "" {
		return nil, &InvalidGrammarLineError{Line: pattern, Reason: "rule pattern is empty"}
	}

	re, err := compileRuleRegex(pattern)
	if err != nil {
		return nil, err
	}
	return &Rule{Pattern: pattern, Label: label, Description: description, re: re}, nil
}

// RuleFromString parses one grammar line of the form
//
//	LABEL: <pattern> # description
//
// The pattern may optionally be wrapped in its own enclosing braces
// (LABEL: {<pattern>} # description), a historical variant carried over
// from the original grammar notation; both forms are accepted.
func RuleFromString(line string) (*Rule, error) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return nil, &InvalidGrammarLineError{Line: line, Reason: "missing ':' separating label from pattern"}
	}
	label := strings.TrimSpace(line[:colon])
	rest := line[colon+1:]

	pattern := rest
	description := ""
	if hash := strings.Index(rest, "#"); hash >= 0 {
		pattern = rest[:hash]
		description = strings.TrimSpace(rest[hash+1:])
	}
	pattern = strings.TrimSpace(pattern)

	if label == "" {
		return nil, &InvalidGrammarLineError{Line: line, Reason: "missing rule label"}
	}
	if pattern == "" {
		return nil, &InvalidGrammarLineError{Line: line, Reason: "empty pattern"}
	}

	if strings.HasPrefix(pattern, "{") && strings.HasSuffix(pattern, "}") {
		pattern = strings.TrimSpace(pattern[1 : len(pattern)-1])
		if pattern == "" {
			return nil, &InvalidGrammarLineError{Line: line, Reason: "empty pattern inside braces"}
		}
	}

	return NewRule(pattern, label, description)
}

// RulesFromGrammar parses a multi-line grammar: one rule per line, blank
// lines and lines starting with "#" ignored.
func RulesFromGrammar(grammar string) ([]*Rule, error) {
	var rules []*Rule
	for _, line := range strings.Split(grammar, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rule, err := RuleFromString(trimmed)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return nil, &InvalidGrammarLineError{Line: grammar, Reason: "grammar contains no rules"}
	}
	return rules, nil
}

// substitute runs r's compiled regex over s, wrapping every
// non-overlapping match (that isn't already inside a group) in "{...}".
func (r *Rule) substitute(s string) (string, error) {
	return r.re.Replace(s, "{${group}}", -1, -1)
}

// apply runs r's substitution through ps.ApplyTransform.
func (r *Rule) apply(ps *ParseString) error {
	return ps.ApplyTransform(r.substitute)
}

// Parse builds a ParseString from t, applies r's substitution once, and
// replays the result into a new tree with at most one more level of
// depth than t. debugLevel is forwarded to the underlying ParseString
// (see NewParseString). Parse returns an *EmptyInputTreeError if t has
// no children.
func (r *Rule) Parse(t *tree.Tree, debugLevel int) (*tree.Tree, error) {
	if len(t.Children) == 0 {
		return nil, &EmptyInputTreeError{}
	}
	ps := NewParseString(t, debugLevel)
	if err := r.apply(ps); err != nil {
		return nil, err
	}
	return ps.ToTree(r.Label)
}
