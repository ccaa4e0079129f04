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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutcode-org/pygmars/token"
	"github.com/aboutcode-org/pygmars/tree"
)

func valueLabels(pairs ...token.ValueLabel) []token.Token {
	return token.FromValueLabelPairs(pairs)
}

// TestParserChunksNounPhrase: a single NP-chunking rule applied once over
// a short sentence produces one grouped NP and leaves the verb outside it.
func TestParserChunksNounPhrase(t *testing.T) {
	p, err := NewParser("NP: <DT>?<JJ>*<NN.*>\n", "S", 1, 0)
	require.NoError(t, err)

	tokens := valueLabels(
		token.ValueLabel{Value: "the", Label: "DT"},
		token.ValueLabel{Value: "big", Label: "JJ"},
		token.ValueLabel{Value: "dog", Label: "NN"},
		token.ValueLabel{Value: "barked", Label: "VBD"},
	)
	result, err := p.Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, "(S (NP the/DT big/JJ dog/NN) barked/VBD)", result.String())
}

// TestParserCascadesNounAndVerbPhrases: an NP rule followed by a VP rule
// that matches <VBD><NP>, each looping once, so the second rule's
// pattern sees the tree the first rule produced.
func TestParserCascadesNounAndVerbPhrases(t *testing.T) {
	grammar := "NP: <DT>?<JJ>*<NN.*>\nVP: <VBD><NP>\n"
	p, err := NewParser(grammar, "S", 1, 0)
	require.NoError(t, err)

	tokens := valueLabels(
		token.ValueLabel{Value: "the", Label: "DT"},
		token.ValueLabel{Value: "dog", Label: "NN"},
		token.ValueLabel{Value: "chased", Label: "VBD"},
		token.ValueLabel{Value: "the", Label: "DT"},
		token.ValueLabel{Value: "cat", Label: "NN"},
	)
	result, err := p.Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, "(S (NP the/DT dog/NN) (VP chased/VBD (NP the/DT cat/NN)))", result.String())
}

// TestParserCountedQuantifier: a {m,n} counted quantifier in a label
// pattern is preserved through compilation rather than being swallowed
// by the "." -> LabelChars substitution.
func TestParserCountedQuantifier(t *testing.T) {
	p, err := NewParser("NN-RUN: <NN>{2,3}\n", "S", 1, 0)
	require.NoError(t, err)

	tokens := valueLabels(
		token.ValueLabel{Value: "a", Label: "NN"},
		token.ValueLabel{Value: "b", Label: "NN"},
		token.ValueLabel{Value: "c", Label: "NN"},
		token.ValueLabel{Value: "d", Label: "VBD"},
	)
	result, err := p.Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, "(S (NN-RUN a/NN b/NN c/NN) d/VBD)", result.String())
}

// TestNewParserRejectsInvalidGrammar: a disjoint, multiply-braced
// pattern on one grammar line fails at construction time, before any
// Parse call, since rules are compiled eagerly.
func TestNewParserRejectsInvalidGrammar(t *testing.T) {
	_, err := NewParser("NP: {<DT>} {<NN>}\n", "S", 1, 0)
	require.Error(t, err)
	var target *InvalidLabelPatternError
	assert.ErrorAs(t, err, &target)
}

// TestParserRoundTripsThroughPrintedForm: the printed form of a parsed
// tree reads back into a structurally identical tree.
func TestParserRoundTripsThroughPrintedForm(t *testing.T) {
	p, err := NewParser("NP: <DT>?<JJ>*<NN.*>\n", "S", 1, 0)
	require.NoError(t, err)

	tokens := valueLabels(
		token.ValueLabel{Value: "the", Label: "DT"},
		token.ValueLabel{Value: "dog", Label: "NN"},
		token.ValueLabel{Value: "barked", Label: "VBD"},
	)
	result, err := p.Parse(tokens)
	require.NoError(t, err)
	assert.NotEmpty(t, result.String())

	parsed, err := tree.ParseBracketed(result.String())
	require.NoError(t, err)
	assert.Equal(t, result.String(), parsed.String())
}

func TestParserEmptyTokensWithRulesErrors(t *testing.T) {
	p, err := NewParser("NP: <DT><NN>\n", "S", 1, 0)
	require.NoError(t, err)

	_, err = p.Parse(nil)
	require.Error(t, err)
	var target *EmptyInputTreeError
	assert.ErrorAs(t, err, &target)
}

func TestParserDefaultsRootLabel(t *testing.T) {
	p, err := NewParser("NP: <DT><NN>\n", "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "ROOT", p.RootLabel)
}

type recordingTracer struct {
	events []TraceEvent
}

func (r *recordingTracer) Trace(e TraceEvent) {
	r.events = append(r.events, e)
}

func TestParserTracesEachRuleApplication(t *testing.T) {
	p, err := NewParser("NP: <DT><NN>\n", "S", 1, 1)
	require.NoError(t, err)
	tracer := &recordingTracer{}
	p.Tracer = tracer

	tokens := valueLabels(
		token.ValueLabel{Value: "the", Label: "DT"},
		token.ValueLabel{Value: "dog", Label: "NN"},
	)
	_, err = p.Parse(tokens)
	require.NoError(t, err)
	require.Len(t, tracer.events, 1)
	assert.Equal(t, "<DT><NN>", tracer.events[0].Before)
	assert.Equal(t, "{<DT><NN>}", tracer.events[0].After)
}

func TestParserMultipleLoops(t *testing.T) {
	// The rule only matches a bare <NN><NN> run, so once the first loop
	// groups every adjacent pair into an NP, a second loop over the same
	// rule finds nothing left to match and the tree is stable.
	grammar := "NP: <NN><NN>\n"
	p, err := NewParser(grammar, "S", 2, 0)
	require.NoError(t, err)

	tokens := valueLabels(
		token.ValueLabel{Value: "a", Label: "NN"},
		token.ValueLabel{Value: "b", Label: "NN"},
		token.ValueLabel{Value: "c", Label: "NN"},
		token.ValueLabel{Value: "d", Label: "NN"},
	)
	result, err := p.Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, "(S (NP a/NN b/NN) (NP c/NN d/NN))", result.String())
}
