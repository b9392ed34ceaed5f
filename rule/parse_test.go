package rule

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/phonetik/bmrules"
)

// mapProvider serves rule sources from an in-memory map, keyed by bare
// resource name.
type mapProvider map[string]string

func (m mapProvider) RuleSource(n bmrules.NameType, rt bmrules.RuleType, lang string) (io.Reader, error) {
	return m.NamedSource(fmt.Sprintf("%s_%s_%s", n.Name(), rt.Name(), lang))
}

func (m mapProvider) NamedSource(name string) (io.Reader, error) {
	src, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("unable to load resource %s", name)
	}
	return strings.NewReader(src), nil
}

func parseString(t *testing.T, src string, provider Provider) []*Rule {
	t.Helper()
	rules, err := ParseRules(strings.NewReader(src), "test", provider)
	if err != nil {
		t.Fatalf("parsing rules: %v", err)
	}
	return rules
}

func TestParseSimpleRule(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rules := parseString(t, `"ts" "" "$" "tS"`, nil)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, have %d", len(rules))
	}
	r := rules[0]
	if r.Pattern() != "ts" {
		t.Errorf("expected pattern 'ts', is %q", r.Pattern())
	}
	if !r.LeftContext().Matches("anything") {
		t.Errorf("expected empty left context to match anything")
	}
	if r.RightContext().Matches("more") || !r.RightContext().Matches("") {
		t.Errorf("expected right context to require end of input")
	}
	phs := r.Phoneme().Phonemes()
	if len(phs) != 1 || phs[0].Text() != "tS" || !phs[0].Languages().IsUniversal() {
		t.Errorf("expected single universal phoneme 'tS', have %v", phs)
	}
}

func TestParseAlternation(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rules := parseString(t, `"a" "" "" "(o|u)"`, nil)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, have %d", len(rules))
	}
	phs := rules[0].Phoneme().Phonemes()
	if len(phs) != 2 || phs[0].Text() != "o" || phs[1].Text() != "u" {
		t.Fatalf("expected alternatives o,u, have %v", phs)
	}
	if !phs[0].Languages().IsUniversal() || !phs[1].Languages().IsUniversal() {
		t.Errorf("expected universal language sets on both alternatives")
	}
}

func TestParseEmptyAlternative(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// A leading or trailing "|" contributes one empty universal
	// alternative. A leading empty field is additionally parsed as an
	// alternative of its own, so "(|o|u)" carries the empty twice; that
	// duplication is part of the established format.
	for field, want := range map[string]int{"(o|u|)": 3, "(|o|u)": 4} {
		expr, err := parsePhonemeExpr(field)
		if err != nil {
			t.Fatalf("parsing %q: %v", field, err)
		}
		phs := expr.Phonemes()
		if len(phs) != want {
			t.Fatalf("%q: expected %d alternatives, have %v", field, want, phs)
		}
		last := phs[len(phs)-1]
		if last.Text() != "" || !last.Languages().IsUniversal() {
			t.Errorf("%q: expected empty universal alternative, is %q[%s]",
				field, last.Text(), last.Languages())
		}
	}
}

func TestParsePhonemeLanguages(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rules := parseString(t, `"kh" "" "" "kh[pol+rus]"`, nil)
	phs := rules[0].Phoneme().Phonemes()
	if len(phs) != 1 || phs[0].Text() != "kh" {
		t.Fatalf("expected single phoneme 'kh', have %v", phs)
	}
	langs := phs[0].Languages()
	if !langs.Contains("pol") || !langs.Contains("rus") || langs.Contains("ger") {
		t.Errorf("expected languages restricted to {pol, rus}, is %q", langs)
	}
}

func TestParseLenientFieldCount(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	src := `
"a" "" ""          // 3 fields: warn and skip
"b" "" "" "b"
"c" "" "" "c" "x"  // 5 fields: warn and skip
`
	rules := parseString(t, src, nil)
	if len(rules) != 1 || rules[0].Pattern() != "b" {
		t.Errorf("expected only the 4-field line to contribute, have %v", rules)
	}
}

func TestParseQuoteStripping(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// quotes are optional and mismatched quoting is tolerated
	rules := parseString(t, `ge "dzh "" zh`, nil)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, have %d", len(rules))
	}
	if got := rules[0].Pattern(); got != "ge" {
		t.Errorf("expected unquoted pattern 'ge', is %q", got)
	}
	// `"dzh` has only a leading quote; stripping removes just that side
	if !rules[0].LeftContext().Matches("xdzh") || rules[0].LeftContext().Matches("dz") {
		t.Errorf("expected left context suffix 'dzh' to match")
	}
}

func TestParseComments(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	src := `// a header comment
"a" "" "" "a" // trailing comment

/* block comment
"b" "" "" "b"
closing line */
"c" "" "" "c"
`
	rules := parseString(t, src, nil)
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, have %d", len(rules))
	}
	if rules[0].Pattern() != "a" || rules[1].Pattern() != "c" {
		t.Errorf("block comment did not swallow its body, have %v", rules)
	}
}

func TestParseBlockCommentSuffixQuirk(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// A terminator mid-line does not close the comment; only a line
	// ending in the terminator does. This matches deployed rule sources.
	src := `/* open
this */ does not close it
"a" "" "" "a"
closes it */
"b" "" "" "b"
`
	rules := parseString(t, src, nil)
	if len(rules) != 1 || rules[0].Pattern() != "b" {
		t.Errorf("expected mid-line terminator to be ignored, have %v", rules)
	}
}

func TestParseUnterminatedBlockComment(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// EOF inside a block comment silently consumes the rest of the input.
	src := `"a" "" "" "a"
/* open and never closed
"b" "" "" "b"
`
	rules := parseString(t, src, nil)
	if len(rules) != 1 || rules[0].Pattern() != "a" {
		t.Errorf("expected trailing comment to swallow the rest, have %v", rules)
	}
}

func TestParseInclude(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	provider := mapProvider{
		"common": `"n" "" "" "n"
"m" "" "" "m"`,
	}
	src := `"a" "" "" "a"
#include common
"b" "" "" "b"
`
	rules := parseString(t, src, provider)
	if len(rules) != 4 {
		t.Fatalf("expected 4 rules, have %d", len(rules))
	}
	if rules[1].Pattern() != "n" || rules[2].Pattern() != "m" {
		t.Errorf("included rules out of order, have %v", rules)
	}
	loc, line := rules[1].Location()
	if loc != "test -> common" || line != 1 {
		t.Errorf("expected provenance 'test -> common':1, is %q:%d", loc, line)
	}
	loc, line = rules[3].Location()
	if loc != "test" || line != 3 {
		t.Errorf("expected provenance 'test':3, is %q:%d", loc, line)
	}
}

func TestParseIncludeMalformed(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// an include target with embedded whitespace is warned about and skipped
	src := `#include one two
"a" "" "" "a"
`
	rules := parseString(t, src, mapProvider{})
	if len(rules) != 1 || rules[0].Pattern() != "a" {
		t.Errorf("expected malformed include to be skipped, have %v", rules)
	}
}

func TestParseIncludeErrorsAreFatal(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	provider := mapProvider{
		"broken": `"x" "" "" "(a"`, // alternation not closed: fatal
	}
	_, err := ParseRules(strings.NewReader("#include broken\n"), "test", provider)
	if err == nil {
		t.Fatalf("expected include parse failure to propagate")
	}
	// line numbers are relative to the included source
	if !strings.Contains(err.Error(), "test -> broken line 1") {
		t.Errorf("expected error to name the included source and line, is %q", err)
	}
	if _, err := ParseRules(strings.NewReader("#include missing\n"), "test", provider); err == nil {
		t.Errorf("expected unresolvable include to be fatal")
	}
}

func TestParseMalformedExpressionIsFatal(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cases := []string{
		`"a" "" "" "(o|u"`,     // alternation not closed
		`"a" "" "" "kh[pol"`,   // language bracket not closed
		`"a" "x[" "" "a"`,      // left context fails in the fallback compiler
	}
	for _, src := range cases {
		_, err := ParseRules(strings.NewReader(src), "test", nil)
		if err == nil {
			t.Errorf("expected fatal parse error for %q", src)
			continue
		}
		if !strings.Contains(err.Error(), "test line 1") {
			t.Errorf("expected error to carry location and line, is %q", err)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	// rendering a parsed phoneme expression back to rule-source notation
	// and re-parsing it reproduces an equivalent expression
	fields := []string{"tS", "kh[pol+rus]", "(o|u)", "(o|u|)", "(x|kh[pol+rus])"}
	for _, field := range fields {
		expr, err := parsePhonemeExpr(field)
		if err != nil {
			t.Fatalf("parsing %q: %v", field, err)
		}
		rendered := fmt.Sprintf("%v", expr)
		again, err := parsePhonemeExpr(rendered)
		if err != nil {
			t.Fatalf("re-parsing %q (from %q): %v", rendered, field, err)
		}
		a, b := expr.Phonemes(), again.Phonemes()
		if len(a) != len(b) {
			t.Fatalf("%q: alternative count changed, %d != %d", field, len(a), len(b))
		}
		for i := range a {
			if a[i].Text() != b[i].Text() || a[i].Languages().String() != b[i].Languages().String() {
				t.Errorf("%q: alternative %d changed, %v != %v", field, i, a[i], b[i])
			}
		}
	}
}
