// Package inventory extracts the list of available commands from the help
// listing of the wrapped tool.
//
// The listing is human-oriented text, so parsing is best effort: sections
// that cannot be recognized contribute nothing and Parse never fails.
package inventory

import (
	"slices"
	"strings"
)

// Default section headers printed by `west --help`.
const (
	BuiltInHeader   = "Built-in commands:"
	ExtensionHeader = "Extension Commands:"
)

// Inventory is the set of command names found in a help listing, in the
// order they were printed.
type Inventory struct {
	BuiltIn   []string `json:"built_in"`
	Extension []string `json:"extension"`
}

// Len returns the total number of commands.
func (inv Inventory) Len() int {
	return len(inv.BuiltIn) + len(inv.Extension)
}

// Has reports whether name is listed in either section.
func (inv Inventory) Has(name string) bool {
	return slices.Contains(inv.BuiltIn, name) || slices.Contains(inv.Extension, name)
}

// Parser scans help text for the two command sections.
type Parser struct {
	builtInHeader   string
	extensionHeader string
}

// Option configures a Parser.
type Option func(*Parser)

// WithHeaders overrides the section header literals.
func WithHeaders(builtIn, extension string) Option {
	return func(p *Parser) {
		p.builtInHeader = builtIn
		p.extensionHeader = extension
	}
}

// NewParser returns a Parser using the default headers unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		builtInHeader:   BuiltInHeader,
		extensionHeader: ExtensionHeader,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type section int

const (
	sectionNone section = iota
	sectionBuiltIn
	sectionExtension
)

// Parse scans text line by line. A header line opens its section, a blank
// line closes the current one, and every other line inside a section
// contributes its first whitespace-delimited token. A trailing colon is
// stripped from that token: west prints "init:", and the name is "init".
// Lines of any length are accepted.
func (p *Parser) Parse(text string) Inventory {
	inv := Inventory{BuiltIn: []string{}, Extension: []string{}}
	current := sectionNone

	for raw := range strings.Lines(text) {
		line := strings.TrimSpace(raw)

		switch {
		case line == p.builtInHeader:
			current = sectionBuiltIn
			continue
		case line == p.extensionHeader:
			current = sectionExtension
			continue
		case line == "":
			current = sectionNone
			continue
		case current == sectionNone:
			continue
		}

		name := strings.TrimSuffix(strings.Fields(line)[0], ":")
		if name == "" {
			continue
		}
		switch current {
		case sectionBuiltIn:
			inv.BuiltIn = append(inv.BuiltIn, name)
		case sectionExtension:
			inv.Extension = append(inv.Extension, name)
		}
	}
	return inv
}

// Parse scans text with the default headers.
func Parse(text string) Inventory {
	return NewParser().Parse(text)
}
