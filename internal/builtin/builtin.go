// Package builtin implements the built-in function registry spec.md
// §4.5 describes: name -> (arity, implementation). Grounded on
// _examples/original_source/basic_function_registry.rs for the required
// set's argument conventions (MID$'s 1-based start index, LEFT$/RIGHT$
// saturating at string length, INT using floor) and on the donor's
// numericOps/stringOps token tables (definitions.go) confirming the same
// surface. RND's last-value state and TAB/SPC's column-aware padding are
// handled by internal/engine, not here — see SPEC_FULL.md §9's resolved
// Open Questions.
package builtin

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/GaryLuck/basic-plus/internal/value"
)

// Func is a built-in implementation: given already-evaluated arguments,
// return a result or an error (spec.md §7's "invalid argument to a
// built-in" runtime error, e.g. SQR(-1), LOG(0)).
type Func func(args []value.Value) (value.Value, error)

// Def pairs a Func with its valid argument count range.
type Def struct {
	MinArgs, MaxArgs int
	Fn               Func
}

// Registry maps a case-folded function name to its Def. Populated by
// init, mirroring the donor's static keyword/function tables and
// original_source's FunctionRegistry singleton.
var Registry = map[string]Def{}

func register(name string, n int, fn Func) {
	Registry[name] = Def{MinArgs: n, MaxArgs: n, Fn: fn}
}

func registerRange(name string, min, max int, fn Func) {
	Registry[name] = Def{MinArgs: min, MaxArgs: max, Fn: fn}
}

func num1(f func(float64) float64) Func {
	return func(args []value.Value) (value.Value, error) {
		if args[0].IsString() {
			return value.Value{}, fmt.Errorf("expected a number")
		}
		return value.Of(f(args[0].Num)), nil
	}
}

func init() {
	register("ABS", 1, num1(math.Abs))
	register("ATN", 1, num1(math.Atan))
	register("COS", 1, num1(math.Cos))
	register("EXP", 1, num1(math.Exp))
	register("INT", 1, num1(math.Floor)) // INT(x) is floor, not truncation.
	register("SIN", 1, num1(math.Sin))
	register("TAN", 1, num1(math.Tan))

	register("LOG", 1, func(args []value.Value) (value.Value, error) {
		x := args[0].Num
		if x <= 0 {
			return value.Value{}, fmt.Errorf("LOG requires a positive argument")
		}
		return value.Of(math.Log(x)), nil
	})

	register("SQR", 1, func(args []value.Value) (value.Value, error) {
		x := args[0].Num
		if x < 0 {
			return value.Value{}, fmt.Errorf("SQR requires a non-negative argument")
		}
		return value.Of(math.Sqrt(x)), nil
	})

	register("SGN", 1, func(args []value.Value) (value.Value, error) {
		x := args[0].Num
		switch {
		case x > 0:
			return value.Of(1), nil
		case x < 0:
			return value.Of(-1), nil
		default:
			return value.Of(0), nil
		}
	})

	// RND is special-cased by internal/engine (it needs the run's
	// last-sample state, per the Open Question resolved in
	// SPEC_FULL.md §9) but is registered here too so the registry stays
	// the single source of truth for "does this name exist / what's its
	// arity" when engine code introspects it.
	register("RND", 1, func(args []value.Value) (value.Value, error) {
		return value.Value{}, fmt.Errorf("RND must be evaluated by the engine")
	})

	register("LEN", 1, func(args []value.Value) (value.Value, error) {
		if !args[0].IsString() {
			return value.Value{}, fmt.Errorf("LEN requires a string argument")
		}
		return value.Of(float64(len(args[0].Str))), nil
	})

	register("VAL", 1, func(args []value.Value) (value.Value, error) {
		if !args[0].IsString() {
			return value.Value{}, fmt.Errorf("VAL requires a string argument")
		}
		s := strings.TrimSpace(args[0].Str)
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value.Of(0), nil // classic BASIC VAL("abc") = 0, not an error
		}
		return value.Of(n), nil
	})

	register("STR$", 1, func(args []value.Value) (value.Value, error) {
		if args[0].IsString() {
			return value.Value{}, fmt.Errorf("STR$ requires a numeric argument")
		}
		return value.OfString(strconv.FormatFloat(args[0].Num, 'g', -1, 64)), nil
	})

	register("CHR$", 1, func(args []value.Value) (value.Value, error) {
		if args[0].IsString() {
			return value.Value{}, fmt.Errorf("CHR$ requires a numeric argument")
		}
		return value.OfString(string(rune(int(args[0].Num)))), nil
	})

	register("ASC", 1, func(args []value.Value) (value.Value, error) {
		if !args[0].IsString() || args[0].Str == "" {
			return value.Value{}, fmt.Errorf("ASC requires a non-empty string argument")
		}
		return value.Of(float64(args[0].Str[0])), nil
	})

	registerRange("LEFT$", 2, 2, func(args []value.Value) (value.Value, error) {
		s, n, err := stringAndCount(args)
		if err != nil {
			return value.Value{}, err
		}
		if n > len(s) {
			n = len(s)
		}
		return value.OfString(s[:n]), nil
	})

	registerRange("RIGHT$", 2, 2, func(args []value.Value) (value.Value, error) {
		s, n, err := stringAndCount(args)
		if err != nil {
			return value.Value{}, err
		}
		if n > len(s) {
			n = len(s)
		}
		return value.OfString(s[len(s)-n:]), nil
	})

	// MID$ takes a 1-based start index, per original_source's
	// `start.saturating_sub(1)`; start or length beyond the string
	// saturate rather than erroring.
	registerRange("MID$", 2, 3, func(args []value.Value) (value.Value, error) {
		if !args[0].IsString() || args[1].IsString() {
			return value.Value{}, fmt.Errorf("MID$ requires (string, number[, number])")
		}
		s := args[0].Str
		start := int(args[1].Num) - 1
		if start < 0 {
			start = 0
		}
		if start > len(s) {
			start = len(s)
		}
		n := len(s) - start
		if len(args) == 3 {
			if args[2].IsString() {
				return value.Value{}, fmt.Errorf("MID$'s length argument must be numeric")
			}
			if want := int(args[2].Num); want < n {
				n = want
			}
		}
		if n < 0 {
			n = 0
		}
		return value.OfString(s[start : start+n]), nil
	})

	// SPC and TAB are registered for completeness (so the registry
	// recognizes the names and enforces arity) but internal/engine
	// intercepts both inside PRINT items for column-aware behavior per
	// the resolved Open Question; called outside of PRINT, they fall
	// back to this context-free implementation.
	register("SPC", 1, func(args []value.Value) (value.Value, error) {
		n := int(args[0].Num)
		if n < 0 {
			n = 0
		}
		return value.OfString(strings.Repeat(" ", n)), nil
	})
	register("TAB", 1, func(args []value.Value) (value.Value, error) {
		n := int(args[0].Num)
		if n < 0 {
			n = 0
		}
		return value.OfString(strings.Repeat(" ", n)), nil
	})
}

func stringAndCount(args []value.Value) (string, int, error) {
	if !args[0].IsString() || args[1].IsString() {
		return "", 0, fmt.Errorf("expected (string, number)")
	}
	n := int(args[1].Num)
	if n < 0 {
		n = 0
	}
	return args[0].Str, n, nil
}

// IsBuiltin reports whether name names a registered built-in function.
func IsBuiltin(name string) bool {
	_, ok := Registry[name]
	return ok
}

// CheckArity validates an argument count against a function's arity
// range, returning an error BASIC's "invalid argument to a built-in"
// runtime-error category covers.
func CheckArity(name string, n int) error {
	def, ok := Registry[name]
	if !ok {
		return fmt.Errorf("unknown function %s", name)
	}
	if n < def.MinArgs || n > def.MaxArgs {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, def.MinArgs, n)
	}
	return nil
}
