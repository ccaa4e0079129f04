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

// Package trace provides the parse.Tracer implementation used by the
// cmd/pygmars CLI to report each rule application as a Parser runs its
// cascade, colorizing the before/after ParseString diff with
// github.com/fatih/color and routing it through github.com/golang/glog's
// leveled verbosity so it layers into the same -v flag as the rest of
// the binary's logging.
package trace

import (
	"fmt"

	"github.com/fatih/color"
	log "github.com/golang/glog"

	"github.com/aboutcode-org/pygmars/parse"
)

var (
	ruleColor   = color.New(color.FgCyan, color.Bold)
	beforeColor = color.New(color.FgYellow)
	afterColor  = color.New(color.FgGreen)
)

// Glog implements parse.Tracer by writing each rule application to glog
// at verbosity level Level.
type Glog struct {
	Level log.Level
}

// New returns a Glog tracer at the given verbosity level.
func New(level int) *Glog {
	return &Glog{Level: log.Level(level)}
}

// Trace logs one TraceEvent: which rule fired on which loop, and the
// ParseString before and after its substitution.
func (g *Glog) Trace(e parse.TraceEvent) {
	header := ruleColor.Sprintf("[loop %d, rule %d: %s]", e.Loop, e.RuleIndex, e.Rule.Label)
	if e.Before == e.After {
		log.V(g.Level).Infof("%s no match", header)
		return
	}
	log.V(g.Level).Infof("%s\n  %s %s\n  %s %s",
		header,
		beforeColor.Sprint("-"), e.Before,
		afterColor.Sprint("+"), e.After,
	)
}

var _ fmt.Stringer = (*Glog)(nil)

// String satisfies fmt.Stringer so a Glog tracer prints usefully in
// diagnostic output (e.g. if the CLI logs its own configuration).
func (g *Glog) String() string {
	return fmt.Sprintf("Glog(level=%d)", g.Level)
}
