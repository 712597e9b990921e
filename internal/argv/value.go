package argv

import (
	"fmt"
	"strconv"
)

type valueKind int

const (
	valueString valueKind = iota + 1
	valueList
	valueBool
)

// Value is a concrete parameter value: a string, a list of strings or a bool.
// The zero Value is absent.
type Value struct {
	kind  valueKind
	text  string
	items []string
	on    bool
}

// String returns a string Value.
func String(s string) Value { return Value{kind: valueString, text: s} }

// List returns a list Value. The items are copied.
func List(items ...string) Value {
	return Value{kind: valueList, items: append([]string(nil), items...)}
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: valueBool, on: b} }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return v.kind == 0 }

// empty reports whether the value contributes nothing: absent, "", an
// empty list or false.
func (v Value) empty() bool {
	switch v.kind {
	case valueString:
		return v.text == ""
	case valueList:
		return len(v.items) == 0
	case valueBool:
		return !v.on
	}
	return true
}

func (v Value) GoString() string {
	switch v.kind {
	case valueString:
		return fmt.Sprintf("argv.String(%q)", v.text)
	case valueList:
		return fmt.Sprintf("argv.List(%q)", v.items)
	case valueBool:
		return fmt.Sprintf("argv.Bool(%t)", v.on)
	}
	return "argv.Value{}"
}

// Invocation is the resolved set of parameter values for one call.
type Invocation struct {
	Operation string
	Values    map[string]Value
}

// NewInvocation returns an empty Invocation for the named operation.
func NewInvocation(operation string) Invocation {
	return Invocation{Operation: operation, Values: make(map[string]Value)}
}

// Set assigns a value and returns the invocation for chaining. On a zero
// Invocation it allocates Values, so use the returned invocation.
func (inv Invocation) Set(name string, v Value) Invocation {
	if inv.Values == nil {
		inv.Values = make(map[string]Value)
	}
	inv.Values[name] = v
	return inv
}

// FromArguments converts decoded JSON arguments into an Invocation for op.
// Null values are treated as absent. Strings are accepted for boolean params
// when strconv.ParseBool understands them, and a single string is accepted
// where a list is expected.
func FromArguments(op *Operation, args map[string]any) (Invocation, error) {
	inv := NewInvocation(op.Name)
	for name, raw := range args {
		p, ok := op.Param(name)
		if !ok {
			return Invocation{}, &InvalidValueError{Operation: op.Name, Param: name, Reason: "unknown parameter"}
		}
		if raw == nil {
			continue
		}
		v, err := coerce(p, raw)
		if err != nil {
			return Invocation{}, &InvalidValueError{Operation: op.Name, Param: name, Reason: err.Error()}
		}
		inv.Values[name] = v
	}
	return inv, nil
}

func coerce(p Param, raw any) (Value, error) {
	switch {
	case p.Kind == KindFlag:
		switch b := raw.(type) {
		case bool:
			return Bool(b), nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return Value{}, fmt.Errorf("expected a boolean, got %q", b)
			}
			return Bool(parsed), nil
		}
		return Value{}, fmt.Errorf("expected a boolean, got %T", raw)

	case p.Kind.IsList():
		switch items := raw.(type) {
		case []string:
			return List(items...), nil
		case string:
			return List(items), nil
		case []any:
			out := make([]string, 0, len(items))
			for i, item := range items {
				s, err := scalar(item)
				if err != nil {
					return Value{}, fmt.Errorf("element %d: %w", i, err)
				}
				out = append(out, s)
			}
			return List(out...), nil
		}
		return Value{}, fmt.Errorf("expected a list of strings, got %T", raw)

	default:
		s, err := scalar(raw)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	}
}

// scalar renders JSON scalars as strings. Numbers are accepted because
// clients sometimes send board revisions or ports unquoted.
func scalar(raw any) (string, error) {
	switch s := raw.(type) {
	case string:
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	}
	return "", fmt.Errorf("expected a string, got %T", raw)
}
