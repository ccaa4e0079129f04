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

package lex

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutcode-org/pygmars/token"
)

func TestNewLexerRejectsEmptyRules(t *testing.T) {
	_, err := NewLexer(nil)
	assert.Error(t, err)
}

func TestNewLexerRejectsInvalidRegexp(t *testing.T) {
	_, err := NewLexer([]RegexLabel{{Regexp: "(unclosed", Label: "X"}})
	assert.Error(t, err)
}

func TestLexStringsFirstMatchWins(t *testing.T) {
	lexer, err := NewLexer([]RegexLabel{
		{Regexp: `^-?[0-9]+$`, Label: "CD"},
		{Regexp: `(The|the|A|a|An|an)$`, Label: "AT"},
		{Regexp: `.*able$`, Label: "JJ"},
		{Regexp: `.*ly$`, Label: "RB"},
		{Regexp: `.*s$`, Label: "NNS"},
		{Regexp: `.*ed$`, Label: "VBD"},
		{Regexp: `.*`, Label: "NN"},
	})
	require.NoError(t, err)

	got := lexer.LexStrings([]string{"The", "dog", "barked", "quickly", "12", "cats"})
	want := []string{"AT", "NN", "VBD", "RB", "CD", "NNS"}
	for i, tok := range got {
		assert.Equal(t, want[i], tok.Label, "token %q", tok.Value)
	}
}

func TestLexStringUsesDefaultWhitespaceSplitter(t *testing.T) {
	lexer, err := NewLexer([]RegexLabel{{Regexp: `.*`, Label: "NN"}})
	require.NoError(t, err)

	tokens := lexer.LexString("the dog barked\nagain today", nil)
	require.Len(t, tokens, 5)
	assert.Equal(t, 1, tokens[0].StartLine)
	assert.Equal(t, 2, tokens[3].StartLine)
	for _, tk := range tokens {
		assert.Equal(t, "NN", tk.Label)
	}
}

func TestLexStringCustomSplitter(t *testing.T) {
	lexer, err := NewLexer([]RegexLabel{{Regexp: `.*`, Label: "CH"}})
	require.NoError(t, err)

	csv := func(line string) []string { return strings.Split(line, ",") }
	tokens := lexer.LexString("a,b,c", csv)
	require.Len(t, tokens, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{tokens[0].Value, tokens[1].Value, tokens[2].Value})
}

func TestLexTokensLeavesUnmatchedTokensUnlabeled(t *testing.T) {
	lexer, err := NewLexer([]RegexLabel{{Regexp: `^[0-9]+$`, Label: "CD"}})
	require.NoError(t, err)

	tokens := lexer.LexTokens([]token.Token{{Value: "42"}, {Value: "dog"}})
	assert.Equal(t, "CD", tokens[0].Label)
	assert.Equal(t, "", tokens[1].Label)
}

// TestLexerScalesToManyRules: a lexer built from 200 mutually exclusive
// rules still labels every token correctly.
func TestLexerScalesToManyRules(t *testing.T) {
	const ruleCount = 200
	rules := make([]RegexLabel, 0, ruleCount)
	values := make([]string, 0, ruleCount)
	for i := 0; i < ruleCount; i++ {
		label := fmt.Sprintf("W%d", i)
		value := fmt.Sprintf("word%d", i)
		rules = append(rules, RegexLabel{Regexp: fmt.Sprintf(`^%s$`, value), Label: label})
		values = append(values, value)
	}
	rules = append(rules, RegexLabel{Regexp: `.*`, Label: "UNK"})

	lexer, err := NewLexer(rules)
	require.NoError(t, err)

	tokens := lexer.LexStrings(values)
	require.Len(t, tokens, ruleCount)
	for i, tok := range tokens {
		assert.Equal(t, fmt.Sprintf("W%d", i), tok.Label)
	}

	unknown := lexer.LexStrings([]string{"not-a-known-word"})
	require.Len(t, unknown, 1)
	assert.Equal(t, "UNK", unknown[0].Label)
}
