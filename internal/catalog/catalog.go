// Package catalog holds the declarative table of operations exposed by the
// server. The table is embedded YAML, decoded and validated once.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/west-mcp/west-mcp/internal/argv"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultYAML []byte

// Names of the two operations that are not bound to a single subcommand.
const (
	OpListCommands = "list_west_commands"
	OpArbitrary    = "run_arbitrary_west_command"
)

// Catalog is an ordered, immutable set of operations.
type Catalog struct {
	ops    []*argv.Operation
	byName map[string]*argv.Operation
}

type document struct {
	Operations []argv.Operation `yaml:"operations"`
	// Top-level "x-" keys hold YAML anchors shared between operations.
	Extensions map[string]any `yaml:",inline"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultYAML)
})

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for key := range doc.Extensions {
		if !strings.HasPrefix(key, "x-") {
			return nil, fmt.Errorf("decode catalog: unknown top-level key %q", key)
		}
	}
	if len(doc.Operations) == 0 {
		return nil, errors.New("catalog has no operations")
	}

	ops := make([]*argv.Operation, 0, len(doc.Operations))
	for i := range doc.Operations {
		ops = append(ops, &doc.Operations[i])
	}
	return New(ops...)
}

// New builds a catalog from operations, validating each one.
func New(ops ...*argv.Operation) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*argv.Operation, len(ops))}
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byName[op.Name]; dup {
			return nil, fmt.Errorf("duplicate operation %q", op.Name)
		}
		c.byName[op.Name] = op
		c.ops = append(c.ops, op)
	}
	return c, nil
}

// Lookup returns the named operation.
func (c *Catalog) Lookup(name string) (*argv.Operation, bool) {
	op, ok := c.byName[name]
	return op, ok
}

// Operations returns the operations in declaration order.
func (c *Catalog) Operations() []*argv.Operation {
	return append([]*argv.Operation(nil), c.ops...)
}

// Len returns the number of operations.
func (c *Catalog) Len() int { return len(c.ops) }

// Without returns a catalog without the named operations. Unknown names are
// reported so misspelled config entries do not pass silently.
func (c *Catalog) Without(names ...string) (*Catalog, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := c.byName[n]; !ok {
			return nil, fmt.Errorf("unknown operation %q", n)
		}
		drop[n] = true
	}
	out := &Catalog{byName: make(map[string]*argv.Operation, len(c.ops))}
	for _, op := range c.ops {
		if drop[op.Name] {
			continue
		}
		out.byName[op.Name] = op
		out.ops = append(out.ops, op)
	}
	return out, nil
}
