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

package tree

import (
	"fmt"

	"github.com/aboutcode-org/pygmars/token"
)

// Diff compares got against want and returns a list of human-readable
// discrepancies, or nil if the trees are structurally identical.
func Diff(got, want Node) (diff []string) {
	if got == nil && want == nil {
		return nil
	}
	if got == nil {
		diff = append(diff, fmt.Sprintf("expected %s, got nil", describe(want)))
		return
	}
	if want == nil {
		diff = append(diff, fmt.Sprintf("expected nil, got %s", describe(got)))
		return
	}

	gotTok, gotIsTok := got.(token.Token)
	wantTok, wantIsTok := want.(token.Token)
	if gotIsTok || wantIsTok {
		if !gotIsTok || !wantIsTok {
			diff = append(diff, fmt.Sprintf("expected %s, got %s", describe(want), describe(got)))
			return
		}
		if gotTok != wantTok {
			diff = append(diff, fmt.Sprintf("expected token %s, got %s", wantTok, gotTok))
		}
		return
	}

	gotTree, gotIsTree := got.(*Tree)
	wantTree, wantIsTree := want.(*Tree)
	if !gotIsTree || !wantIsTree {
		diff = append(diff, fmt.Sprintf("expected %s, got %s", describe(want), describe(got)))
		return
	}

	if gotTree.Label != wantTree.Label {
		diff = append(diff, fmt.Sprintf("expected label %q, got %q", wantTree.Label, gotTree.Label))
	}
	if len(gotTree.Children) != len(wantTree.Children) {
		diff = append(diff, fmt.Sprintf("expected %d children in (%s), got %d",
			len(wantTree.Children), wantTree.Label, len(gotTree.Children)))
	}
	n := len(gotTree.Children)
	if len(wantTree.Children) < n {
		n = len(wantTree.Children)
	}
	for i := 0; i < n; i++ {
		diff = append(diff, Diff(gotTree.Children[i], wantTree.Children[i])...)
	}
	return diff
}

func describe(n Node) string {
	switch v := n.(type) {
	case token.Token:
		return fmt.Sprintf("token %s", v)
	case *Tree:
		return fmt.Sprintf("(%s)", v.Label)
	default:
		return fmt.Sprintf("%v", n)
	}
}
