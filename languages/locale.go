package languages

import (
	"strings"

	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ForTag maps a BCP-47 language tag to the catalog language it belongs
// to, if any. Catalog entries are plain English language names in lower
// case ("polish", "russian", …), so the tag's base language is rendered
// through its English display name and looked up.
//
// This is a convenience for callers that want to select a rule table
// bucket from locale information; it does not inspect name spellings.
func (c *Catalog) ForTag(tag language.Tag) (string, bool) {
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	name := strings.ToLower(display.English.Languages().Name(base))
	if name == "" || !c.names.Contains(name) {
		return "", false
	}
	return name, true
}

// ForHostLocale maps the locale of the hosting operating system to a
// catalog language. Falls back to "en-US" if the locale cannot be
// detected, as not all platforms expose one.
func (c *Catalog) ForHostLocale() (string, bool) {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		tracer().Errorf(err.Error())
		userLocale = "en-US"
		tracer().Infof("assuming default user locale %v", userLocale)
	} else {
		tracer().Debugf("detected user locale %v", userLocale)
	}
	return c.ForTag(language.Make(userLocale))
}
