package argv

import (
	"fmt"
	"slices"
)

// Separator introduces the passthrough group.
const Separator = "--"

// Build validates inv against op and encodes it into an argument vector.
// The returned vector does not include the tool binary.
func Build(op *Operation, inv Invocation) ([]string, error) {
	for name := range inv.Values {
		if _, ok := op.Param(name); !ok {
			return nil, &InvalidValueError{Operation: op.Name, Param: name, Reason: "unknown parameter"}
		}
	}

	var leading, flags, positionals, passthrough []string

	for _, p := range op.Params {
		v := normalize(p, inv.Values[p.Name])
		if err := check(op, p, v); err != nil {
			return nil, err
		}
		if v.empty() || !conditionMet(p, inv) {
			continue
		}

		switch p.Kind {
		case KindFlag:
			flags = append(flags, p.Flag)
		case KindOption:
			flags = append(flags, p.Flag, v.text)
		case KindRepeated:
			for _, item := range v.items {
				flags = append(flags, p.Flag, item)
			}
		case KindLeading:
			leading = append(leading, v.text)
		case KindPositional:
			positionals = append(positionals, v.text)
		case KindPositionals:
			positionals = append(positionals, v.items...)
		case KindPassthrough:
			passthrough = append(passthrough, Separator)
			passthrough = append(passthrough, v.items...)
		}
	}

	out := make([]string, 0, len(op.Command)+len(leading)+len(flags)+len(positionals)+len(passthrough))
	out = append(out, op.Command...)
	out = append(out, leading...)
	out = append(out, flags...)
	out = append(out, positionals...)
	out = append(out, passthrough...)
	return out, nil
}

// check validates one supplied value against its param spec.
func check(op *Operation, p Param, v Value) error {
	if v.empty() {
		if p.Required {
			return &MissingParameterError{Operation: op.Name, Param: p.Name}
		}
		if v.IsZero() {
			return nil
		}
	}

	switch v.kind {
	case valueBool:
		if p.Kind != KindFlag {
			return &InvalidValueError{Operation: op.Name, Param: p.Name, Reason: fmt.Sprintf("%s param does not take a boolean", p.Kind)}
		}
	case valueString:
		if p.Kind == KindFlag {
			return &InvalidValueError{Operation: op.Name, Param: p.Name, Reason: "expected a boolean"}
		}
	case valueList:
		if !p.Kind.IsList() {
			return &InvalidValueError{Operation: op.Name, Param: p.Name, Reason: fmt.Sprintf("%s param does not take a list", p.Kind)}
		}
	}

	if len(p.Choices) == 0 || v.empty() {
		return nil
	}
	values := v.items
	if v.kind == valueString {
		values = []string{v.text}
	}
	for _, s := range values {
		if !slices.Contains(p.Choices, s) {
			return &InvalidSubcommandError{
				Operation:  op.Name,
				Param:      p.Name,
				Label:      p.label(),
				Value:      s,
				Allowed:    slices.Clone(p.Choices),
				Suggestion: suggest(s, p.Choices),
			}
		}
	}
	return nil
}

// normalize lets a single string stand in for a one-element list.
func normalize(p Param, v Value) Value {
	if v.kind == valueString && p.Kind.IsList() {
		if v.text == "" {
			return List()
		}
		return List(v.text)
	}
	return v
}

func conditionMet(p Param, inv Invocation) bool {
	if p.When == nil {
		return true
	}
	ref := inv.Values[p.When.Param]
	return ref.kind == valueString && slices.Contains(p.When.Values, ref.text)
}
