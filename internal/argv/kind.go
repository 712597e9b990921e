package argv

import "fmt"

// Kind selects how a Param is encoded into the argument vector.
type Kind int

const (
	KindFlag Kind = iota
	KindOption
	KindRepeated
	KindLeading
	KindPositional
	KindPositionals
	KindPassthrough
)

var kindNames = map[Kind]string{
	KindFlag:        "flag",
	KindOption:      "option",
	KindRepeated:    "repeated",
	KindLeading:     "leading",
	KindPositional:  "positional",
	KindPositionals: "positionals",
	KindPassthrough: "passthrough",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown parameter kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown parameter kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// HasFlag reports whether params of this kind carry a flag token.
func (k Kind) HasFlag() bool {
	return k == KindFlag || k == KindOption || k == KindRepeated
}

// IsList reports whether params of this kind take a list of strings.
func (k Kind) IsList() bool {
	return k == KindRepeated || k == KindPositionals || k == KindPassthrough
}
