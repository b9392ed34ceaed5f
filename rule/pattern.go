package rule

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Matcher decides whether a context slice satisfies a compiled context
// test. Matchers are produced by compiling a context specification when
// a Rule is constructed and are immutable thereafter.
//
// A matcher is always handed the exact left or right remainder of the
// input around a pattern position, with the anchors already embedded by
// the Rule constructor, so "contains a match" semantics apply.
type Matcher interface {
	Matches(input string) bool
}

// compileContext compiles a context specification into a Matcher.
// The specification is a restricted regular-expression subset:
// optionally anchored at either end, with either plain literal content
// or a single character class covering the whole unanchored content.
// Those shapes compile to direct string operations; anything else falls
// back to the general regexp engine.
//
// The specializations are checked in a fixed priority order; several
// conditions can hold at once and the first applicable one wins.
func compileContext(expr string) (Matcher, error) {
	content := expr
	anchorStart := strings.HasPrefix(content, "^")
	if anchorStart {
		content = content[1:]
	}
	anchorEnd := strings.HasSuffix(content, "$")
	if anchorEnd {
		content = content[:len(content)-1]
	}

	if !strings.Contains(content, "[") {
		switch {
		case anchorStart && anchorEnd && content == "":
			return matchEmptyOnly{}, nil
		case anchorStart && anchorEnd:
			return matchExact{content: content}, nil
		case (anchorStart || anchorEnd) && content == "":
			// a bare "^" or "$" matches everything
			return matchAll{}, nil
		case anchorStart:
			return matchPrefix{prefix: content}, nil
		case anchorEnd:
			return matchSuffix{suffix: content}, nil
		}
	} else if strings.HasPrefix(content, "[") && strings.HasSuffix(content, "]") {
		box := content[1 : len(content)-1]
		if !strings.Contains(box, "[") {
			want := true
			if strings.HasPrefix(box, "^") {
				want = false
				box = box[1:]
			}
			switch {
			case anchorStart && anchorEnd:
				return matchOneRune{chars: box, want: want}, nil
			case anchorStart:
				return matchFirstRune{chars: box, want: want}, nil
			case anchorEnd:
				return matchLastRune{chars: box, want: want}, nil
			}
		}
	}

	// General shape: compile the original, unmodified specification.
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("unsupported context pattern %q: %w", expr, err)
	}
	return matchRegexp{re: re}, nil
}

// matchEmptyOnly matches only the empty slice ("^$").
type matchEmptyOnly struct{}

func (matchEmptyOnly) Matches(input string) bool {
	return len(input) == 0
}

// matchExact matches a slice equal to the content ("^abc$").
type matchExact struct {
	content string
}

func (m matchExact) Matches(input string) bool {
	return input == m.content
}

// matchAll matches every slice (a bare "^" or "$").
type matchAll struct{}

func (matchAll) Matches(string) bool {
	return true
}

// matchPrefix matches a slice starting with the content ("^abc").
type matchPrefix struct {
	prefix string
}

func (m matchPrefix) Matches(input string) bool {
	return strings.HasPrefix(input, m.prefix)
}

// matchSuffix matches a slice ending with the content ("abc$").
type matchSuffix struct {
	suffix string
}

func (m matchSuffix) Matches(input string) bool {
	return strings.HasSuffix(input, m.suffix)
}

// matchOneRune matches a slice of exactly one character whose class
// membership equals want ("^[aeiou]$", "^[^aeiou]$").
type matchOneRune struct {
	chars string
	want  bool
}

func (m matchOneRune) Matches(input string) bool {
	r, size := utf8.DecodeRuneInString(input)
	return size == len(input) && size > 0 &&
		strings.ContainsRune(m.chars, r) == m.want
}

// matchFirstRune tests class membership of the first character
// ("^[aeiou]").
type matchFirstRune struct {
	chars string
	want  bool
}

func (m matchFirstRune) Matches(input string) bool {
	if len(input) == 0 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(input)
	return strings.ContainsRune(m.chars, r) == m.want
}

// matchLastRune tests class membership of the last character
// ("[aeiou]$").
type matchLastRune struct {
	chars string
	want  bool
}

func (m matchLastRune) Matches(input string) bool {
	if len(input) == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(input)
	return strings.ContainsRune(m.chars, r) == m.want
}

// matchRegexp is the fallback for context shapes outside the supported
// subset. It tests whether the slice contains a match anywhere, not
// whether it matches in full.
type matchRegexp struct {
	re *regexp.Regexp
}

func (m matchRegexp) Matches(input string) bool {
	return m.re.MatchString(input)
}
