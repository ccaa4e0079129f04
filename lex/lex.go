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

// Package lex implements the first stage of the labeling pipeline: a
// regular-expression lexer that assigns a label to each raw token by
// testing it, in order, against a list of (regexp, label) rules and
// keeping the first match.
package lex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aboutcode-org/pygmars/token"
)

// RegexLabel is one lexer rule: a token whose Value matches Regexp (tested
// like Python's re.match -- anchored at the start, not required to
// consume the whole value) is assigned Label.
type RegexLabel struct {
	Regexp string
	Label  string
}

type compiledRule struct {
	re      *regexp.Regexp
	label   string
	pattern string
}

// Lexer assigns a label to every token.Token by testing its value against
// an ordered list of regular expressions, keeping the first match. All
// regexps are compiled eagerly at construction, so a malformed regexp
// surfaces at NewLexer rather than on the first Tokenize call, and a
// *Lexer is immutable and safe for concurrent use once built.
type Lexer struct {
	rules []compiledRule
}

// NewLexer compiles rules in order. An empty rules list is rejected: a
// lexer that can never assign a label is almost certainly a mistake.
func NewLexer(rules []RegexLabel) (*Lexer, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("lex: a lexer needs at least one (regexp, label) rule")
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(`^(?:` + r.Regexp + `)`)
		if err != nil {
			return nil, fmt.Errorf("lex: invalid lexer regexp %q for label %q: %w", r.Regexp, r.Label, err)
		}
		compiled = append(compiled, compiledRule{re: re, label: r.Label, pattern: r.Regexp})
	}
	return &Lexer{rules: compiled}, nil
}

// Splitter breaks one line of text into token values; token.WhitespaceSplitter
// is the default used by Tokenize when splitter is nil.
type Splitter = token.Splitter

// Tokenize splits s into lines and each line into token values via
// splitter (token.WhitespaceSplitter if nil), producing unlabeled tokens
// positioned by line number and index within the line.
func Tokenize(s string, splitter Splitter) []token.Token {
	if splitter == nil {
		splitter = token.WhitespaceSplitter
	}
	var tokens []token.Token
	for ln, line := range strings.Split(s, "\n") {
		for pos, value := range splitter(line) {
			tokens = append(tokens, token.Token{Value: value, StartLine: ln + 1, Pos: pos})
		}
	}
	return tokens
}

// label assigns the label of the first matching rule to tok, leaving it
// unlabeled if no rule matches.
func (l *Lexer) label(tok token.Token) token.Token {
	for _, rule := range l.rules {
		if rule.re.MatchString(tok.Value) {
			tok.Label = rule.label
			return tok
		}
	}
	return tok
}

// LexTokens labels an already-tokenized sequence, returning a new slice
// (the input is left untouched), assigning each token the label of the
// first rule whose regexp matches its value.
func (l *Lexer) LexTokens(tokens []token.Token) []token.Token {
	out := make([]token.Token, len(tokens))
	for i, tok := range tokens {
		out[i] = l.label(tok)
	}
	return out
}

// LexString tokenizes s with splitter (token.WhitespaceSplitter if nil)
// and labels the result.
func (l *Lexer) LexString(s string, splitter Splitter) []token.Token {
	return l.LexTokens(Tokenize(s, splitter))
}

// LexStrings labels one token per element of values, positioned by index
// within a single line.
func (l *Lexer) LexStrings(values []string) []token.Token {
	tokens := make([]token.Token, len(values))
	for i, v := range values {
		tokens[i] = token.Token{Value: v, Pos: i}
	}
	return l.LexTokens(tokens)
}

func (l *Lexer) String() string {
	return fmt.Sprintf("Lexer(size=%d)", len(l.rules))
}
