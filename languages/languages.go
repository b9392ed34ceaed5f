/*
Package languages provides language sets and language catalogs for
phonetic rule matching.

A language set constrains a phoneme or a rule to the languages it is
valid for. The universal set Any places no constraint and is the
absorbing element under restriction. Restricted sets narrow down under
RestrictTo (set intersection); an empty restricted set is a legal
terminal state meaning "no language permits this".

A catalog lists the language names supported by one naming tradition.
Catalogs are parsed from the same comment-tolerant line format as rule
sources and drive which per-language rule tables a registry builds.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'
*/
package languages

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to bmrules.languages .
func tracer() tracing.Trace {
	return tracing.Select("bmrules.languages")
}

// AnyLanguage is the name of the distinguished catalog bucket holding
// rules not tied to a single language.
const AnyLanguage = "any"

// === Language sets =============================================

// Set is a constraint on the languages a phoneme or rule applies to.
// It is either the universal set Any or a restricted set of language
// names. The zero value is the empty restricted set. Sets are immutable;
// all operations return new values.
type Set struct {
	universal bool
	names     *treeset.Set // sorted for deterministic iteration; nil means empty
}

// Any is the universal language set. It does not constrain anything and
// is the neutral element of RestrictTo.
var Any = Set{universal: true}

// MakeSet creates a restricted language set from the given names.
// Duplicates collapse; order is irrelevant.
func MakeSet(names ...string) Set {
	s := treeset.NewWithStringComparator()
	for _, n := range names {
		s.Add(n)
	}
	return Set{names: s}
}

// IsUniversal reports whether s is the universal set.
func (s Set) IsUniversal() bool {
	return s.universal
}

// IsEmpty reports whether s is a restricted set with no members, i.e.
// no language permits whatever s is attached to.
func (s Set) IsEmpty() bool {
	return !s.universal && (s.names == nil || s.names.Size() == 0)
}

// IsSingleton reports whether s restricts to exactly one language.
func (s Set) IsSingleton() bool {
	return !s.universal && s.names != nil && s.names.Size() == 1
}

// Contains reports whether the named language is permitted by s.
func (s Set) Contains(name string) bool {
	if s.universal {
		return true
	}
	return s.names != nil && s.names.Contains(name)
}

// AnyMember returns a member of s; the smallest one, so that the choice
// is deterministic. It returns "" for the universal and the empty set.
func (s Set) AnyMember() string {
	if s.universal || s.names == nil || s.names.Size() == 0 {
		return ""
	}
	return s.names.Values()[0].(string)
}

// RestrictTo intersects s with other. Any is neutral: restricting the
// universal set yields the other operand. RestrictTo is commutative,
// associative and idempotent.
func (s Set) RestrictTo(other Set) Set {
	if s.universal {
		return other
	}
	if other.universal {
		return s
	}
	if s.names == nil || other.names == nil {
		return Set{names: treeset.NewWithStringComparator()}
	}
	return Set{names: s.names.Intersection(other.names)}
}

// Names returns the members of s in sorted order, nil for the universal
// set.
func (s Set) Names() []string {
	if s.universal || s.names == nil {
		return nil
	}
	names := make([]string, 0, s.names.Size())
	it := s.names.Iterator()
	for it.Next() {
		names = append(names, it.Value().(string))
	}
	return names
}

func (s Set) String() string {
	if s.universal {
		return AnyLanguage
	}
	return strings.Join(s.Names(), "+")
}

// === Language catalogs =========================================

// Catalog is the list of language names supported by one naming
// tradition. Catalogs are read-only after parsing.
type Catalog struct {
	names *treeset.Set
}

// ParseCatalog reads a language catalog: one language name per line.
// Line comments ("//"), blank lines and block comments ("/*" opening a
// line, a line ending in "*/" closing) are tolerated, following the rule
// source conventions.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	cat := &Catalog{names: treeset.NewWithStringComparator()}
	scanner := bufio.NewScanner(r)
	inComment := false
	for scanner.Scan() {
		line := scanner.Text()
		if inComment {
			if strings.HasSuffix(line, blockCommentEnd) {
				inComment = false
			}
			continue
		}
		if strings.HasPrefix(line, blockCommentStart) {
			inComment = true
			continue
		}
		if i := strings.Index(line, lineComment); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cat.names.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading language catalog: %w", err)
	}
	if cat.names.Size() == 0 {
		return nil, fmt.Errorf("language catalog is empty")
	}
	tracer().Debugf("parsed catalog of %d languages", cat.names.Size())
	return cat, nil
}

const (
	lineComment       = "//"
	blockCommentStart = "/*"
	blockCommentEnd   = "*/"
)

// Contains reports whether the named language is part of the catalog.
func (c *Catalog) Contains(name string) bool {
	return c.names.Contains(name)
}

// Names returns all catalog entries in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.names.Size())
	it := c.names.Iterator()
	for it.Next() {
		names = append(names, it.Value().(string))
	}
	return names
}

// AsSet returns the catalog as a restricted language set.
func (c *Catalog) AsSet() Set {
	return MakeSet(c.Names()...)
}
