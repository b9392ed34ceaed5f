package rule

import (
	"strings"

	"github.com/phonetik/bmrules/languages"
)

// Phoneme is a candidate pronunciation fragment: a piece of phoneme text
// plus the set of languages for which the pronunciation is valid.
// Phonemes are immutable values; Append and Join return new ones.
type Phoneme struct {
	text  *lazyText
	langs languages.Set
}

// NewPhoneme creates a phoneme from text and a language constraint.
func NewPhoneme(text string, langs languages.Set) Phoneme {
	return Phoneme{text: leafText(text), langs: langs}
}

// Text returns the phoneme text. The text is held as a concatenation
// tree and flattened (once) on first read.
func (p Phoneme) Text() string {
	if p.text == nil {
		return ""
	}
	return p.text.String()
}

// Languages returns the language constraint of the phoneme.
func (p Phoneme) Languages() languages.Set {
	return p.langs
}

// Append returns a phoneme with text extended by s, with the same
// language constraint. The operation is O(1); both phonemes share the
// original text tree.
func (p Phoneme) Append(s string) Phoneme {
	if p.text == nil {
		return Phoneme{text: leafText(s), langs: p.langs}
	}
	return Phoneme{text: concatText(p.text, leafText(s)), langs: p.langs}
}

// Join concatenates the text of p and q and intersects their language
// constraints.
func (p Phoneme) Join(q Phoneme) Phoneme {
	if p.text == nil {
		return Phoneme{text: q.text, langs: p.langs.RestrictTo(q.langs)}
	}
	if q.text == nil {
		return Phoneme{text: p.text, langs: p.langs.RestrictTo(q.langs)}
	}
	return Phoneme{
		text:  concatText(p.text, q.text),
		langs: p.langs.RestrictTo(q.langs),
	}
}

// Compare orders phonemes lexicographically over their flattened text,
// unit by unit; a strict prefix sorts before the longer text. Used to
// produce deterministic, de-duplicatable output sequences.
func (p Phoneme) Compare(q Phoneme) int {
	return strings.Compare(p.Text(), q.Text())
}

// Phonemes yields p as its only alternative.
//
// Interface PhonemeExpr
func (p Phoneme) Phonemes() []Phoneme {
	return []Phoneme{p}
}

// String renders the phoneme in rule-source notation, i.e. the text
// followed by a bracketed language list if the phoneme is constrained.
func (p Phoneme) String() string {
	if p.langs.IsUniversal() {
		return p.Text()
	}
	return p.Text() + "[" + strings.Join(p.langs.Names(), "+") + "]"
}

// PhonemeExpr is the right-hand side of a rule: an ordered, finite
// sequence of candidate phonemes. There are exactly two implementations,
// a single Phoneme and a PhonemeList of alternatives.
type PhonemeExpr interface {
	Phonemes() []Phoneme
}

// PhonemeList is an ordered list of alternative phonemes. The order is
// alternation order from the rule source and is significant for
// downstream determinism.
type PhonemeList struct {
	alts []Phoneme
}

// NewPhonemeList creates a phoneme alternation from the given
// alternatives, in order.
func NewPhonemeList(alts ...Phoneme) PhonemeList {
	l := PhonemeList{alts: make([]Phoneme, len(alts))}
	copy(l.alts, alts)
	return l
}

// Phonemes returns the alternatives in source order. The returned slice
// is shared; callers must treat it as read-only.
//
// Interface PhonemeExpr
func (l PhonemeList) Phonemes() []Phoneme {
	return l.alts
}

// String renders the alternation in rule-source notation.
func (l PhonemeList) String() string {
	parts := make([]string, len(l.alts))
	for i, ph := range l.alts {
		parts[i] = ph.String()
	}
	return "(" + strings.Join(parts, "|") + ")"
}
