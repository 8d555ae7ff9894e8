// Package cities provides the read-only city facts directory served by the
// city route.
package cities

import (
	"maps"
	"slices"
	"strings"
)

// Unknown is the description returned for cities missing from the directory.
const Unknown = "No info for this city."

// DefaultFacts returns a fresh copy of the built-in facts table.
func DefaultFacts() map[string]string {
	return map[string]string{
		"boston":  "Boston is a city that experiences all four seasons.",
		"newyork": "New York is a very busy place with lots of tall buildings.",
		"seattle": "Seattle gets a fair amount of rain each year.",
		"miami":   "Miami is known for being warm and having many beaches.",
		"dallas":  "Dallas is located in Texas and is pretty big.",
	}
}

// Directory is an immutable, lower-case keyed facts table. It is safe for
// concurrent use because nothing writes to it after NewDirectory returns.
type Directory struct {
	facts map[string]string
}

// NewDirectory copies facts into a new Directory, lower-casing the keys.
// A nil map yields the built-in table.
func NewDirectory(facts map[string]string) *Directory {
	if facts == nil {
		facts = DefaultFacts()
	}
	d := &Directory{facts: make(map[string]string, len(facts))}
	for name, info := range facts {
		d.facts[strings.ToLower(name)] = info
	}
	return d
}

// Lookup returns the description for name, matched case-insensitively.
func (d *Directory) Lookup(name string) (string, bool) {
	info, ok := d.facts[strings.ToLower(name)]
	return info, ok
}

// Describe returns the description for name or Unknown.
func (d *Directory) Describe(name string) string {
	if info, ok := d.Lookup(name); ok {
		return info
	}
	return Unknown
}

// Names returns the known city keys in sorted order.
func (d *Directory) Names() []string {
	return slices.Sorted(maps.Keys(d.facts))
}

// Len returns the number of known cities.
func (d *Directory) Len() int { return len(d.facts) }
