package rule

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/phonetik/bmrules"
	"github.com/phonetik/bmrules/languages"
)

// Rule-source lexical conventions.
const (
	lineComment       = "//"
	blockCommentStart = "/*"
	blockCommentEnd   = "*/"
	hashInclude       = "#include"
	doubleQuote       = `"`
)

// Provider resolves named rule sources. Loading and caching of sources
// is the environment's business; the parser and the registry only ever
// read through this interface.
type Provider interface {
	// RuleSource returns the rule source for a name type, rule type and
	// language combination.
	RuleSource(n bmrules.NameType, rt bmrules.RuleType, lang string) (io.Reader, error)

	// NamedSource returns a source by bare name, as referenced by
	// #include directives and used for language catalogs.
	NamedSource(name string) (io.Reader, error)
}

// ParseRules parses a rule source into a list of rules, resolving
// #include directives recursively through src. location names the
// source for diagnostics and provenance; included rules carry a
// provenance of "<location> -> <included-name>".
//
// The parser is lenient about malformed rule lines — a line that does
// not split into exactly 4 fields is logged and skipped — but strict
// about the fields themselves: a context or phoneme expression that does
// not compile aborts the whole parse with an error naming the source
// location and line number.
func ParseRules(r io.Reader, location string, src Provider) ([]*Rule, error) {
	// The accumulator is shared across recursive include resolution, so
	// included rules land in the includer's list in order.
	list := arraylist.New()
	if err := parseInto(list, r, location, src); err != nil {
		return nil, err
	}
	rules := make([]*Rule, 0, list.Size())
	it := list.Iterator()
	for it.Next() {
		rules = append(rules, it.Value().(*Rule))
	}
	return rules, nil
}

func parseInto(list *arraylist.List, r io.Reader, location string, src Provider) error {
	scanner := bufio.NewScanner(r)
	currentLine := 0
	inBlockComment := false
	for scanner.Scan() {
		currentLine++
		rawLine := scanner.Text()
		line := rawLine

		if inBlockComment {
			// Only a line ending in the terminator closes the comment; a
			// terminator mid-line is not honored. Rule sources in the wild
			// rely on this exact behavior, so it is not generalized.
			if strings.HasSuffix(line, blockCommentEnd) {
				inBlockComment = false
			}
			continue
		}
		if strings.HasPrefix(line, blockCommentStart) {
			// The opening line contributes nothing, even if it also
			// contains a closer.
			inBlockComment = true
			continue
		}
		if i := strings.Index(line, lineComment); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, hashInclude) {
			incl := strings.TrimSpace(line[len(hashInclude):])
			if strings.Contains(incl, " ") {
				tracer().Infof("malformed include statement, skipping: %q", rawLine)
				continue
			}
			inner, err := src.NamedSource(incl)
			if err != nil {
				return fmt.Errorf("%s line %d: resolving include %q: %w",
					location, currentLine, incl, err)
			}
			if err := parseInto(list, inner, location+" -> "+incl, src); err != nil {
				return err
			}
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 4 {
			tracer().Infof("malformed rule statement split into %d parts, skipping: %q",
				len(parts), rawLine)
			continue
		}
		expr, err := parsePhonemeExpr(stripQuotes(parts[3]))
		if err != nil {
			return fmt.Errorf("%s line %d: %w", location, currentLine, err)
		}
		rule, err := NewRule(
			stripQuotes(parts[0]),
			stripQuotes(parts[1]),
			stripQuotes(parts[2]),
			expr)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", location, currentLine, err)
		}
		rule.location = location
		rule.line = currentLine
		list.Add(rule)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: reading rule source: %w", location, err)
	}
	return nil
}

// parsePhonemeExpr parses the phoneme column of a rule line: either a
// single phoneme or a parenthesized alternation "(a|b|…)". An empty
// alternative at the start or end of an alternation contributes one
// additional alternative with empty text and the universal language set.
func parsePhonemeExpr(field string) (PhonemeExpr, error) {
	if !strings.HasPrefix(field, "(") {
		return parsePhoneme(field)
	}
	if !strings.HasSuffix(field, ")") {
		return nil, fmt.Errorf("phoneme starts with '(' so must end with ')': %q", field)
	}
	body := field[1 : len(field)-1]
	parts := strings.Split(body, "|")
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1] // trailing empties are not alternatives
	}
	alts := make([]Phoneme, 0, len(parts)+1)
	for _, part := range parts {
		ph, err := parsePhoneme(part)
		if err != nil {
			return nil, err
		}
		alts = append(alts, ph)
	}
	if strings.HasPrefix(body, "|") || strings.HasSuffix(body, "|") {
		alts = append(alts, NewPhoneme("", languages.Any))
	}
	return NewPhonemeList(alts...), nil
}

// parsePhoneme parses a single phoneme: text, optionally followed by a
// bracketed language list "kh[pol+rus]". Without the bracket suffix the
// language set is universal.
func parsePhoneme(ph string) (Phoneme, error) {
	open := strings.Index(ph, "[")
	if open < 0 {
		return NewPhoneme(ph, languages.Any), nil
	}
	if !strings.HasSuffix(ph, "]") {
		return Phoneme{}, fmt.Errorf("phoneme expression contains a '[' but does not end in ']': %q", ph)
	}
	text := ph[:open]
	langs := strings.Split(ph[open+1:len(ph)-1], "+")
	return NewPhoneme(text, languages.MakeSet(langs...)), nil
}

// stripQuotes removes one optional leading and one optional trailing
// double-quote, independently. Quoting is not required and mismatched
// quoting is tolerated.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, doubleQuote)
	s = strings.TrimSuffix(s, doubleQuote)
	return s
}
