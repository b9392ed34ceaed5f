package bmrules

// NameType identifies a naming tradition. Rule tables are organized per
// name type; the matching core treats the value as an opaque key.
type NameType int8

// Supported naming traditions.
const (
	Generic NameType = iota
	Ashkenazi
	Sephardic
)

// Name returns the short identifier used in rule-source resource names.
func (n NameType) Name() string {
	switch n {
	case Ashkenazi:
		return "ash"
	case Sephardic:
		return "sep"
	}
	return "gen"
}

func (n NameType) String() string {
	return n.Name()
}

// NameTypes lists all supported name types, in registry build order.
func NameTypes() []NameType {
	return []NameType{Generic, Ashkenazi, Sephardic}
}

// RuleType identifies a rule category within a name type. Rules is the
// base category; Approx and Exact additionally carry a "common" bucket
// shared by all languages.
type RuleType int8

// Supported rule categories.
const (
	Approx RuleType = iota
	Exact
	Rules
)

// Name returns the short identifier used in rule-source resource names.
func (rt RuleType) Name() string {
	switch rt {
	case Approx:
		return "approx"
	case Exact:
		return "exact"
	}
	return "rules"
}

func (rt RuleType) String() string {
	return rt.Name()
}

// RuleTypes lists all supported rule types, in registry build order.
func RuleTypes() []RuleType {
	return []RuleType{Approx, Exact, Rules}
}
