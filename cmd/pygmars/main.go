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

// Command pygmars lexes and parses a text file according to a lexer
// grammar and a parser grammar, printing the resulting labeled tree.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"strings"

	log "github.com/golang/glog"

	"github.com/aboutcode-org/pygmars/internal/trace"
	"github.com/aboutcode-org/pygmars/lex"
	"github.com/aboutcode-org/pygmars/parse"
	"github.com/aboutcode-org/pygmars/token"
)

var (
	lexerGrammarFile = flag.String("lexer-grammar", "", "Path to a lexer grammar file: one 'REGEXP LABEL' pair per line.")
	grammarFile      = flag.String("grammar", "", "Path to a parser grammar file: one 'LABEL: <pattern> # description' rule per line.")
	inputFile        = flag.String("input", "", "Path to the input text file to lex and parse.")
	rootLabel        = flag.String("root", "ROOT", "Label of the tree's root node.")
	loopCount        = flag.Int("loop", 1, "Number of times to apply the full rule cascade.")
	traceLevel       = flag.Int("trace", 0, "Tracing verbosity (0 disables tracing; trace lines are logged at this glog -v level).")
	splitterName     = flag.String("splitter", "whitespace", "Tokenizer line splitter: 'whitespace' or 'char'.")
)

func main() {
	flag.Parse()

	if *grammarFile == "" {
		log.Exitf("missing required flag -grammar")
	}
	if *inputFile == "" {
		log.Exitf("missing required flag -input")
	}

	grammarSource, err := readFile(*grammarFile)
	if err != nil {
		log.Exitf("error reading parser grammar %q: %s", *grammarFile, err)
	}
	parser, err := parse.NewParser(grammarSource, *rootLabel, *loopCount, *traceLevel)
	if err != nil {
		log.Exitf("error compiling parser grammar %q: %s", *grammarFile, err)
	}
	if *traceLevel > 0 {
		parser.Tracer = trace.New(*traceLevel)
	}

	inputSource, err := readFile(*inputFile)
	if err != nil {
		log.Exitf("error reading input %q: %s", *inputFile, err)
	}

	splitter, err := lookupSplitter(*splitterName)
	if err != nil {
		log.Exitf("error resolving splitter: %s", err)
	}

	var tokens []token.Token
	if *lexerGrammarFile != "" {
		lexerSource, err := readFile(*lexerGrammarFile)
		if err != nil {
			log.Exitf("error reading lexer grammar %q: %s", *lexerGrammarFile, err)
		}
		rules, err := parseLexerGrammar(lexerSource)
		if err != nil {
			log.Exitf("error compiling lexer grammar %q: %s", *lexerGrammarFile, err)
		}
		lexer, err := lex.NewLexer(rules)
		if err != nil {
			log.Exitf("error compiling lexer grammar %q: %s", *lexerGrammarFile, err)
		}
		tokens = lexer.LexString(inputSource, splitter)
	} else {
		tokens = lex.Tokenize(inputSource, splitter)
	}

	result, err := parser.Parse(tokens)
	if err != nil {
		log.Exitf("error parsing %q: %s", *inputFile, err)
	}
	fmt.Println(result.String())
}

func readFile(path string) (string, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func lookupSplitter(name string) (token.Splitter, error) {
	switch name {
	case "whitespace", "":
		return token.WhitespaceSplitter, nil
	case "char":
		return token.CharSplitter, nil
	default:
		return nil, fmt.Errorf("unknown splitter %q", name)
	}
}

// parseLexerGrammar reads one "REGEXP LABEL" pair per non-blank,
// non-comment line: the label is the last whitespace-delimited field and
// the regexp is everything before it. A regexp containing its own
// internal whitespace still parses correctly since only the trailing
// label field is split off.
func parseLexerGrammar(source string) ([]lex.RegexLabel, error) {
	var rules []lex.RegexLabel
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			return nil, fmt.Errorf("invalid lexer grammar line %q: expected 'REGEXP LABEL'", line)
		}
		label := fields[len(fields)-1]
		pattern := strings.TrimSpace(strings.TrimSuffix(trimmed, label))
		rules = append(rules, lex.RegexLabel{Regexp: pattern, Label: label})
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("lexer grammar has no rules")
	}
	return rules, nil
}
