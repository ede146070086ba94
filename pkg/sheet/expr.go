package sheet

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dop251/goja"
)

// DefaultEvalTimeout bounds one evaluation of an expr formula.
const DefaultEvalTimeout = time.Second

// interruptedMessage is the value passed to goja's Interrupt when an
// evaluation runs out of time.
const interruptedMessage = "timeout"

// compileExpr compiles an OpExpr formula into a combine function over the
// values of f.Of, in order.
//
// Each formula owns one runtime. The graph lock serializes evaluations, and
// every evaluation rebinds all inputs before running, so results depend
// only on the input values. An evaluation that runs longer than timeout is
// interrupted; a timeout <= 0 disables the limit.
func compileExpr(f FormulaDef, timeout time.Duration) (func([]float64) float64, error) {
	prog, err := goja.Compile(f.Name, f.Expr, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadFormula, f.Name, err)
	}

	vm := goja.New()
	names := append([]string(nil), f.Of...)

	run := func() (goja.Value, error) {
		if timeout <= 0 {
			return vm.RunProgram(prog)
		}
		timer := time.AfterFunc(timeout, func() {
			vm.Interrupt(interruptedMessage)
		})
		v, err := vm.RunProgram(prog)
		timer.Stop()
		// The timer may have fired after RunProgram returned.
		vm.ClearInterrupt()
		return v, err
	}

	return func(values []float64) float64 {
		for i, name := range names {
			if err := vm.Set(name, values[i]); err != nil {
				panic(fmt.Errorf("%w: %s: bind %s: %v", ErrBadFormula, f.Name, name, err))
			}
		}

		v, err := run()
		if err != nil {
			var interrupted *goja.InterruptedError
			if errors.As(err, &interrupted) {
				panic(fmt.Errorf("%w: %s: evaluation exceeded %s", ErrBadFormula, f.Name, timeout))
			}
			panic(fmt.Errorf("%w: %s: %v", ErrBadFormula, f.Name, err))
		}

		var n float64
		switch x := v.Export().(type) {
		case int64:
			n = float64(x)
		case float64:
			n = x
		default:
			panic(fmt.Errorf("%w: %s: result %v is not a number", ErrBadFormula, f.Name, v))
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			panic(fmt.Errorf("%w: %s: result %v is not finite", ErrBadFormula, f.Name, n))
		}
		return n
	}, nil
}
