package debug

import "github.com/goforj/godump"

// DumpValue renders any inspected runtime value (a symbol table, a
// control-stack snapshot, a single Value) to stdout as a structured
// dump for the "inspect_symbol"/"inspect_stack" debug operations in
// spec.md §4.7, mirroring the donor's three godump.Dump(...) call sites
// in basic.go rather than hand-rolling a pretty-printer.
func DumpValue(v any) {
	godump.Dump(v)
}
