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
	"github.com/aboutcode-org/pygmars/token"
	"github.com/aboutcode-org/pygmars/tree"
)

// TraceEvent describes one rule application within one pass of Parse, for
// consumption by a Tracer (see internal/trace for the concrete
// glog/color-backed implementation).
type TraceEvent struct {
	Loop      int
	RuleIndex int
	Rule      *Rule
	Before    string
	After     string
	Result    *tree.Tree
}

// Tracer receives a TraceEvent for every rule application a Parser
// performs while TraceLevel > 0. The parse package has no logging
// dependency of its own; callers that want tracing output supply a
// Tracer (internal/trace.New wires one backed by glog and fatih/color).
type Tracer interface {
	Trace(TraceEvent)
}

// Parser applies an ordered cascade of Rules to a token sequence,
// looping over the full rule list LoopCount times. All rules are
// compiled eagerly at construction (see NewParser), so a *Parser is
// immutable once built and Parse is safe to call concurrently for
// distinct inputs.
type Parser struct {
	Rules      []*Rule
	RootLabel  string
	LoopCount  int
	TraceLevel int
	DebugLevel int
	Tracer     Tracer
}

// NewParser parses grammar into Rules (see RulesFromGrammar) and
// compiles every rule's regex up front, so a malformed label pattern or
// grammar line surfaces here rather than on the first Parse call. An
// empty rootLabel defaults to "ROOT"; loopCount must be non-negative (0
// means Parse only wraps the tokens at their root, applying no rules).
func NewParser(grammar, rootLabel string, loopCount, traceLevel int) (*Parser, error) {
	rules, err := RulesFromGrammar(grammar)
	if err != nil {
		return nil, err
	}
	if rootLabel == "" {
		rootLabel = "ROOT"
	}
	return &Parser{
		Rules:      rules,
		RootLabel:  rootLabel,
		LoopCount:  loopCount,
		TraceLevel: traceLevel,
		DebugLevel: 1,
	}, nil
}

// Parse wraps tokens under RootLabel and runs the rule cascade LoopCount
// times, each pass applying every rule in order. Each rule application
// adds at most one level of tree depth. Parse returns *EmptyInputTreeError
// if a rule would need to match against a tree with no children -- which
// includes an empty tokens slice with at least one rule to apply.
func (p *Parser) Parse(tokens []token.Token) (*tree.Tree, error) {
	children := make([]tree.Node, len(tokens))
	for i, tk := range tokens {
		children[i] = tree.Node(tk)
	}
	t, err := tree.New(p.RootLabel, children)
	if err != nil {
		return nil, err
	}

	for loop := 0; loop < p.LoopCount; loop++ {
		for i, rule := range p.Rules {
			if len(t.Children) == 0 {
				return nil, &EmptyInputTreeError{}
			}

			ps := NewParseString(t, p.DebugLevel)
			before := ps.raw()
			if err := rule.apply(ps); err != nil {
				return nil, err
			}
			next, err := ps.ToTree(rule.Label)
			if err != nil {
				return nil, err
			}

			if p.TraceLevel > 0 && p.Tracer != nil {
				p.Tracer.Trace(TraceEvent{
					Loop:      loop,
					RuleIndex: i,
					Rule:      rule,
					Before:    before,
					After:     ps.raw(),
					Result:    next,
				})
			}
			t = next
		}
	}
	return t, nil
}
