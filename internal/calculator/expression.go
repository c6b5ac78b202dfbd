package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"

	"secure-calculator/internal/models"
)

var functions = map[string]govaluate.ExpressionFunction{
	string(OpAdd):      bind(OpAdd),
	string(OpSubtract): bind(OpSubtract),
	string(OpMultiply): bind(OpMultiply),
	string(OpDivide):   bind(OpDivide),
}

func bind(op Operation) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, models.InvalidArgument(string(op), "arguments", fmt.Sprintf("must be exactly two, got %d", len(args)))
		}
		n, err := Apply(op, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return n.Float64(), nil
	}
}

// Evaluate parses and evaluates an arithmetic expression such as
// "divide(add(2, 3), 4) * 2". The add/subtract/multiply/divide functions run
// through the typed operations; infix operators follow govaluate's float
// semantics, except that a non-finite result (such as "5 / 0") is rejected.
// Variables are not supported.
func Evaluate(expression string) (n Number, err error) {
	// govaluate panics on some malformed input, e.g. accessors like "[x]".
	defer func() {
		if r := recover(); r != nil {
			n, err = Number{}, models.InvalidArgument("evaluate", "expression", fmt.Sprintf("cannot be evaluated: %v", r))
		}
	}()

	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, functions)
	if err != nil {
		return Number{}, models.InvalidArgument("evaluate", "expression", fmt.Sprintf("is invalid: %v", err))
	}
	result, err := expr.Evaluate(nil)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) || errors.Is(err, models.ErrDivisionByZero) {
			return Number{}, err
		}
		return Number{}, models.InvalidArgument("evaluate", "expression", fmt.Sprintf("cannot be evaluated: %v", err))
	}
	n, ok := toNumber(result)
	if !ok {
		return Number{}, models.InvalidArgument("evaluate", "expression", "does not evaluate to a number")
	}
	if f := n.Float64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}, models.InvalidArgument("evaluate", "expression", "does not evaluate to a finite number")
	}
	return n, nil
}
