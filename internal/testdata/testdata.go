// Package testdata carries an embedded sample rule set, organized the
// way production rule resources are: per name type a language catalog
// "<nametype>_languages", plus one rule source per rule type and
// language and the shared "common" buckets with their include chains.
package testdata

import (
	"bytes"
	"embed"
	"fmt"
	"io"

	"github.com/phonetik/bmrules"
	"github.com/phonetik/bmrules/rule"
)

//go:embed rules
var files embed.FS

// Provider returns a rule.Provider over the embedded sample rule set.
func Provider() rule.Provider {
	return fsProvider{}
}

type fsProvider struct{}

func (fsProvider) RuleSource(n bmrules.NameType, rt bmrules.RuleType, lang string) (io.Reader, error) {
	return open(fmt.Sprintf("%s_%s_%s", n.Name(), rt.Name(), lang))
}

func (fsProvider) NamedSource(name string) (io.Reader, error) {
	return open(name)
}

func open(name string) (io.Reader, error) {
	data, err := files.ReadFile("rules/" + name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("unable to load resource %s: %w", name, err)
	}
	return bytes.NewReader(data), nil
}
