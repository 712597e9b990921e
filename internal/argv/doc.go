// Package argv turns typed operation requests into argument vectors for an
// external command-line tool.
//
// An Operation describes one subcommand of the tool as an ordered list of
// Param specs. Each Param has a Kind that fixes how a supplied value is
// encoded:
//
//   - KindFlag: boolean, emits the flag token when true
//   - KindOption: emits flag and value when the value is non-empty
//   - KindRepeated: emits flag and value once per list element
//   - KindLeading: positional emitted right after the command tokens
//   - KindPositional: positional emitted after all flags
//   - KindPositionals: list of positionals emitted after all flags
//   - KindPassthrough: "--" followed by the list verbatim, always last
//
// Build is pure. It validates the Invocation against the Operation (required
// params, enumerated choices, value shapes) and never starts a process.
//
// # Ordering
//
// The vector is assembled as: command tokens, leading positionals, flags in
// declaration order, positionals in declaration order, passthrough group.
// The same Invocation always produces the same vector.
package argv
