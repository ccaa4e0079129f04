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
	"sync"
)

// LabelChars is the character class matched by a bare "." inside a label
// pattern's "<...>": any character that is not one of the four delimiter
// characters '<', '>', '{', '}'.
const LabelChars = `[^{}<>]`

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// labelPatternShapeRe validates the *transformed* pattern (after
	// "<"/">" have become the literal sequences "(<(" / ")>)"): it must
	// be a sequence of either plain regex-operator runs (ordinary
	// characters, or {m}/{m,}/{m,n} counted quantifiers) or single
	// bracketed label atoms "<...>" whose interior has no nested angle
	// brackets or braces. Anything else -- a bare brace outside a
	// quantifier, an unbalanced or nested "<...>" -- is rejected.
	labelPatternShapeRe = regexp.MustCompile(
		`^(([^{}<>]|\{\d+,?\}|\{\d*,\d+\})+|<[^{}<>]+>)*$`,
	)
)

var (
	labelPatternCacheMu sync.Mutex
	labelPatternCache   = map[string]*regexp.Regexp{}
)

// LabelPatternToRegex translates a label pattern into a standard regular
// expression source string over the ParseString encoding:
//
//  1. remove all whitespace
//  2. replace "<" with "(<(" and ">" with ")>)", so '<'/'>' act as
//     parentheses scoping quantifiers and alternation to whole atoms
//  3. validate there are no unbalanced/nested "<...>" and no stray
//     braces outside quantifier form
//  4. replace every bare "." (one not part of a counted quantifier) with
//     LabelChars
//
// Returns *InvalidLabelPatternError if pattern violates the dialect.
func LabelPatternToRegex(pattern string) (string, error) {
	cleaned := whitespaceRe.ReplaceAllString(pattern, "")
	cleaned = strings.ReplaceAll(cleaned, "<", "(<(")
	cleaned = strings.ReplaceAll(cleaned, ">", ")>)")

	if !labelPatternShapeRe.MatchString(cleaned) {
		return "", &InvalidLabelPatternError{
			Pattern:  pattern,
			Fragment: cleaned,
			Reason:   "not a valid label pattern (stray brace, or unbalanced/nested '<...>')",
		}
	}

	// A "." is only meaningful inside a "<...>" atom.
	inAtom := false
	for _, r := range cleaned {
		switch {
		case r == '<':
			inAtom = true
		case r == '>':
			inAtom = false
		case r == '.' && !inAtom:
			return "", &InvalidLabelPatternError{Pattern: pattern, Fragment: cleaned, Reason: "'.' outside '<...>'"}
		}
	}

	// Replacing "." with LabelChars is safe here: the shape check above
	// has already confirmed that every "{" that survived is part of a
	// counted quantifier {m}, {m,} or {m,n}, none of which contain a
	// literal ".", so this blanket replacement never touches quantifier
	// braces.
	return strings.ReplaceAll(cleaned, ".", LabelChars), nil
}

// compileLabelPattern compiles pattern (a label pattern, not yet wrapped
// by a Rule) into a cached *regexp.Regexp, keyed on the original pattern
// source text.
func compileLabelPattern(pattern string) (*regexp.Regexp, error) {
	labelPatternCacheMu.Lock()
	if re, ok := labelPatternCache[pattern]; ok {
		labelPatternCacheMu.Unlock()
		return re, nil
	}
	labelPatternCacheMu.Unlock()

	source, err := LabelPatternToRegex(pattern)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, &InvalidLabelPatternError{
			Pattern:  pattern,
			Fragment: source,
			Reason:   err.Error(),
		}
	}

	labelPatternCacheMu.Lock()
	labelPatternCache[pattern] = re
	labelPatternCacheMu.Unlock()
	return re, nil
}
