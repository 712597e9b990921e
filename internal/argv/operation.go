package argv

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Result shapes an operation can produce.
const (
	ResultExecution = "execution"
	ResultInventory = "inventory"
)

// Operation describes one callable subcommand of the external tool.
type Operation struct {
	// Name is the exposed operation name, e.g. "build_zephyr_project".
	Name string `yaml:"name" json:"name" validate:"required,lowercase"`
	// Command holds the subcommand tokens placed first in the vector.
	// Empty for operations whose subcommand is itself a parameter.
	Command     []string `yaml:"command" json:"command,omitempty" validate:"dive,required"`
	Description string   `yaml:"description" json:"description" validate:"required"`
	// Result is ResultExecution (default) or ResultInventory.
	Result string  `yaml:"result" json:"result,omitempty" validate:"omitempty,oneof=execution inventory"`
	Params []Param `yaml:"params" json:"params,omitempty" validate:"dive"`
}

// Param describes one named parameter of an Operation.
type Param struct {
	Name        string `yaml:"name" json:"name" validate:"required,lowercase"`
	Kind        Kind   `yaml:"kind" json:"kind"`
	Flag        string `yaml:"flag" json:"flag,omitempty" validate:"omitempty,startswith=-"`
	Required    bool   `yaml:"required" json:"required,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	// Choices restricts the accepted values. Label names the value in the
	// rejection message, e.g. "'blobs' subcommand".
	Choices []string `yaml:"choices" json:"choices,omitempty" validate:"omitempty,dive,required"`
	Label   string   `yaml:"label" json:"label,omitempty"`
	// When makes the param conditional on another param's value.
	When *Condition `yaml:"when" json:"when,omitempty"`
}

// Condition gates a Param on the value of another Param.
type Condition struct {
	Param  string   `yaml:"param" json:"param" validate:"required"`
	Values []string `yaml:"values" json:"values" validate:"required,min=1"`
}

var validate = validator.New()

// ResultKind returns the result shape, defaulting to ResultExecution.
func (o *Operation) ResultKind() string {
	if o.Result == "" {
		return ResultExecution
	}
	return o.Result
}

// Param returns the param with the given name.
func (o *Operation) Param(name string) (Param, bool) {
	for _, p := range o.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Validate checks the descriptor for structural mistakes. It is run once
// when the catalog is loaded.
func (o *Operation) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("operation %q: %w", o.Name, err)
	}

	if strings.ContainsAny(o.Name, " \t") {
		return fmt.Errorf("operation %q: name contains whitespace", o.Name)
	}

	seen := make(map[string]bool, len(o.Params))
	passthrough := 0
	for _, p := range o.Params {
		if seen[p.Name] {
			return fmt.Errorf("operation %q: duplicate param %q", o.Name, p.Name)
		}
		seen[p.Name] = true

		if strings.ContainsAny(p.Name, " \t") {
			return fmt.Errorf("operation %q: param %q: name contains whitespace", o.Name, p.Name)
		}

		if _, ok := kindNames[p.Kind]; !ok {
			return fmt.Errorf("operation %q: param %q: invalid kind %d", o.Name, p.Name, int(p.Kind))
		}
		if p.Kind.HasFlag() && p.Flag == "" {
			return fmt.Errorf("operation %q: param %q: %s requires a flag", o.Name, p.Name, p.Kind)
		}
		if !p.Kind.HasFlag() && p.Flag != "" {
			return fmt.Errorf("operation %q: param %q: %s cannot have a flag", o.Name, p.Name, p.Kind)
		}
		if p.Kind == KindFlag && len(p.Choices) > 0 {
			return fmt.Errorf("operation %q: param %q: flags cannot have choices", o.Name, p.Name)
		}
		if p.Kind == KindPassthrough {
			passthrough++
		}
		if p.When != nil {
			if err := validate.Struct(p.When); err != nil {
				return fmt.Errorf("operation %q: param %q: %w", o.Name, p.Name, err)
			}
			ref, ok := o.Param(p.When.Param)
			if !ok || ref.Name == p.Name {
				return fmt.Errorf("operation %q: param %q: condition refers to unknown param %q", o.Name, p.Name, p.When.Param)
			}
			if ref.Kind.IsList() || ref.Kind == KindFlag {
				return fmt.Errorf("operation %q: param %q: condition param %q must be a scalar", o.Name, p.Name, ref.Name)
			}
		}
	}
	if passthrough > 1 {
		return fmt.Errorf("operation %q: at most one passthrough param allowed", o.Name)
	}
	return nil
}

// label returns the human name used in choice rejection messages.
func (p Param) label() string {
	if p.Label != "" {
		return p.Label
	}
	return fmt.Sprintf("value for '%s'", p.Name)
}

// String renders the operation as a usage line, e.g.
// "build -b <board> [-d <build_dir>] <source_dir> [-- <cmake_opt>...]".
func (o *Operation) String() string {
	parts := append([]string(nil), o.Command...)
	for _, p := range o.Params {
		var s string
		switch p.Kind {
		case KindFlag:
			s = p.Flag
		case KindOption:
			s = p.Flag + " <" + p.Name + ">"
		case KindRepeated:
			s = p.Flag + " <" + p.Name + ">..."
		case KindLeading, KindPositional:
			s = "<" + p.Name + ">"
		case KindPositionals:
			s = "<" + p.Name + ">..."
		case KindPassthrough:
			s = "-- <" + p.Name + ">..."
		}
		if !p.Required {
			s = "[" + s + "]"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
