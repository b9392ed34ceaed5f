package rule

import (
	"fmt"
	"sync"

	"github.com/phonetik/bmrules"
	"github.com/phonetik/bmrules/languages"
)

// CommonLanguage is the distinguished bucket of rules shared by all
// languages of a name type. It exists for every rule type except the
// base Rules type.
const CommonLanguage = "common"

type registryKey struct {
	name bmrules.NameType
	rt   bmrules.RuleType
	lang string
}

// Registry is an index from (name type, rule type, language) to an
// ordered list of rules. It is built once, eagerly, and read-only
// thereafter; lookups need no locking.
type Registry struct {
	index map[registryKey][]*Rule
}

// BuildRegistry builds a registry from the rule sources reachable
// through src. For every name type it loads the language catalog
// "<nametype>_languages", then parses one rule source per supported
// language and rule type, plus the "common" bucket for the non-base
// rule types.
//
// Any failure — an unresolvable source, a malformed context or phoneme
// expression — aborts the build; a partially built registry is never
// returned.
func BuildRegistry(src Provider) (*Registry, error) {
	reg := &Registry{index: make(map[registryKey][]*Rule)}
	for _, n := range bmrules.NameTypes() {
		catSource, err := src.NamedSource(n.Name() + "_languages")
		if err != nil {
			return nil, fmt.Errorf("unable to load language catalog for %s: %w", n, err)
		}
		cat, err := languages.ParseCatalog(catSource)
		if err != nil {
			return nil, fmt.Errorf("language catalog for %s: %w", n, err)
		}
		for _, rt := range bmrules.RuleTypes() {
			langs := cat.Names()
			if rt != bmrules.Rules {
				langs = append(langs, CommonLanguage)
			}
			for _, lang := range langs {
				location := resourceName(n, rt, lang)
				r, err := src.RuleSource(n, rt, lang)
				if err != nil {
					return nil, fmt.Errorf("unable to load rule source %s: %w", location, err)
				}
				rules, err := ParseRules(r, location, src)
				if err != nil {
					return nil, fmt.Errorf("problem processing %s: %w", location, err)
				}
				reg.index[registryKey{name: n, rt: rt, lang: lang}] = rules
			}
		}
	}
	tracer().Infof("built rule registry with %d tables", len(reg.index))
	return reg, nil
}

func resourceName(n bmrules.NameType, rt bmrules.RuleType, lang string) string {
	return fmt.Sprintf("%s_%s_%s", n.Name(), rt.Name(), lang)
}

// Rules returns the rule list for a name type, rule type and single
// language. A miss is a configuration error — the caller asked for a
// combination the registry was supposed to be built for — not a soft
// empty result.
func (reg *Registry) Rules(n bmrules.NameType, rt bmrules.RuleType, lang string) ([]*Rule, error) {
	rules, ok := reg.index[registryKey{name: n, rt: rt, lang: lang}]
	if !ok {
		return nil, fmt.Errorf("no rules found for %s, %s, %s", n.Name(), rt.Name(), lang)
	}
	return rules, nil
}

// RulesForSet returns the rule list for a language set: the language's
// own table if the set restricts to exactly one language, the "any"
// bucket otherwise.
func (reg *Registry) RulesForSet(n bmrules.NameType, rt bmrules.RuleType, langs languages.Set) ([]*Rule, error) {
	if langs.IsSingleton() {
		return reg.Rules(n, rt, langs.AnyMember())
	}
	return reg.Rules(n, rt, languages.AnyLanguage)
}

var (
	globalRegistryOnce sync.Once
	globalRegistry     *Registry
	globalRegistryErr  error
)

// Bootstrap builds the process-wide registry from src on first call;
// concurrent and later calls all receive the registry (or error) built
// by the first. The build is never re-entered.
func Bootstrap(src Provider) (*Registry, error) {
	globalRegistryOnce.Do(func() {
		globalRegistry, globalRegistryErr = BuildRegistry(src)
	})
	return globalRegistry, globalRegistryErr
}
