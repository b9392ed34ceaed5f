/*
Package rule implements context-sensitive phoneme rewrite rules.

Content

A rule maps a literal pattern to one or more candidate phoneme
renderings, constrained to the text surrounding a match position: the
text before the position must satisfy the rule's left context and the
text after the pattern its right context. Contexts are written in a
restricted regular-expression subset and compiled into specialized
matchers when a rule is constructed; see compileContext in pattern.go.

Rules are parsed from line-oriented rule sources (ParseRules) and
indexed by a build-once Registry, keyed by name type, rule type and
language. At evaluation time, a caller walks an input name and asks each
candidate rule

	rule.MatchesAt(input, position)

reading the rule's PhonemeExpr on a match to obtain candidate phonemes
with their language constraints.

Rules, phonemes and the registry index are immutable after construction
and safe for arbitrary concurrent readers.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.
*/
package rule

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to bmrules.rule .
func tracer() tracing.Trace {
	return tracing.Select("bmrules.rule")
}

// Rule is a single phoneme rewrite rule: a literal pattern, compiled
// left and right context matchers, and the phoneme expression produced
// on a match. Rules are immutable and thread-safe; they are normally
// created by ParseRules rather than constructed directly.
type Rule struct {
	pattern  string
	lContext Matcher
	rContext Matcher
	phoneme  PhonemeExpr
	location string // rule source this rule was parsed from, diagnostics only
	line     int    // 1-based line number within location, diagnostics only
}

// NewRule creates a rule from a literal pattern, left and right context
// specifications and a phoneme expression. The left context is anchored
// to the end of the text preceding a match, the right context to the
// start of the text following it. Context compilation is eager; a
// context outside the supported subset that fails to compile as a
// regular expression is reported here, never at match time.
func NewRule(pattern, leftContext, rightContext string, phoneme PhonemeExpr) (*Rule, error) {
	lc, err := compileContext(leftContext + "$")
	if err != nil {
		return nil, fmt.Errorf("left context: %w", err)
	}
	rc, err := compileContext("^" + rightContext)
	if err != nil {
		return nil, fmt.Errorf("right context: %w", err)
	}
	return &Rule{
		pattern:  pattern,
		lContext: lc,
		rContext: rc,
		phoneme:  phoneme,
	}, nil
}

// Pattern returns the string literal that must match exactly at the
// evaluation position.
func (r *Rule) Pattern() string {
	return r.pattern
}

// LeftContext returns the compiled matcher for the text preceding a
// pattern match.
func (r *Rule) LeftContext() Matcher {
	return r.lContext
}

// RightContext returns the compiled matcher for the text following a
// pattern match.
func (r *Rule) RightContext() Matcher {
	return r.rContext
}

// Phoneme returns the phoneme expression associated with a match of
// this rule.
func (r *Rule) Phoneme() PhonemeExpr {
	return r.phoneme
}

// Location returns the rule source location and 1-based line number the
// rule was parsed from. Both are recorded for diagnostics only and play
// no part in matching.
func (r *Rule) Location() (string, int) {
	return r.location, r.line
}

// MatchesAt decides whether the rule applies to input at the given byte
// position: the pattern must occur at pos, the text before pos must
// satisfy the left context and the text after the pattern the right
// context.
//
// MatchesAt panics if pos is negative; that is a caller contract
// violation, distinct from an ordinary non-match.
func (r *Rule) MatchesAt(input string, pos int) bool {
	if pos < 0 {
		panic("rule: cannot match pattern at negative position")
	}
	end := pos + len(r.pattern)
	if end > len(input) {
		return false // not enough room for the pattern
	}
	return input[pos:end] == r.pattern &&
		r.rContext.Matches(input[end:]) &&
		r.lContext.Matches(input[:pos])
}

func (r *Rule) String() string {
	if r.location == "" {
		return fmt.Sprintf("rule[%q]", r.pattern)
	}
	return fmt.Sprintf("rule[%q at %s:%d]", r.pattern, r.location, r.line)
}
