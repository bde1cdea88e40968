package localization

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is the table Render falls back to for an unrecognized
// locale name, or for a tag a recognized locale's table omits (spec §6:
// "unknown locale falls back to the default").
const DefaultLocale = "en-US"

// table maps a Tag to its unparsed text/template source for one locale.
type table map[Tag]string

var locales = loadLocales()

func loadLocales() map[string]table {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		panic(fmt.Sprintf("localization: embedded locales directory is missing: %v", err))
	}

	out := make(map[string]table, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		locale := name[:len(name)-len(".yaml")]

		data, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			panic(fmt.Sprintf("localization: reading %s: %v", name, err))
		}

		var t table
		if err := yaml.Unmarshal(data, &t); err != nil {
			panic(fmt.Sprintf("localization: parsing %s: %v", name, err))
		}
		out[locale] = t
	}

	if _, ok := out[DefaultLocale]; !ok {
		panic(fmt.Sprintf("localization: default locale %q has no message table", DefaultLocale))
	}
	return out
}

// Locales returns every locale name with a loaded message table.
func Locales() []string {
	names := make([]string, 0, len(locales))
	for name := range locales {
		names = append(names, name)
	}
	return names
}

// resolveTable resolves locale to its table, falling back to DefaultLocale when
// locale is empty or unrecognized.
func resolveTable(locale string) table {
	if t, ok := locales[locale]; ok {
		return t
	}
	return locales[DefaultLocale]
}

// templateFor returns the raw template source for tag in locale, falling
// back to DefaultLocale's template when locale's own table doesn't cover
// that tag (a locale under active translation is still usable for every
// tag it hasn't gotten to yet).
func templateFor(locale string, tag Tag) (string, bool) {
	if src, ok := resolveTable(locale)[tag]; ok {
		return src, true
	}
	if src, ok := locales[DefaultLocale][tag]; ok {
		return src, true
	}
	return "", false
}
