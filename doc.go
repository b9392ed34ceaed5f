/*
Package bmrules implements the rule-matching core of a Beider–Morse style
phonetic name-matching engine.

Description

Phonetic name matching maps a written name to one or more candidate
pronunciations ("phonemes"), each constrained by the set of languages for
which the pronunciation is plausible. The mapping is driven by tables of
context-sensitive rewrite rules: a rule carries a literal pattern, a left
and a right context (a restricted regular-expression subset, compiled to
allocation-light matchers), and a phoneme expression with per-language
constraints.

This module covers the matching primitive only:

Compiling context specifications into specialized matchers, the phoneme
algebra (language-set-qualified phoneme text with lazy concatenation,
single phonemes and ordered alternatives), parsing of rule sources — a
small line-oriented DSL with comments, quoting and file inclusion — and
the build-once registry indexing rules by name type, rule type and
language. All of this lives in package rule. Language sets and
per-name-type language catalogs live in package languages.

The surrounding engine — walking a name left to right, applying rule
tables in sequence, guessing languages from spelling — is not part of
this module. It consumes the registry through Rule.MatchesAt and the
phoneme expressions attached to matching rules.

Rule sources are obtained through an injected Provider; this module does
not prescribe a storage medium. Package internal/testdata carries
embedded sample sources used by the tests.

All types in this module are immutable after construction and safe for
concurrent readers.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.
*/
package bmrules

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
