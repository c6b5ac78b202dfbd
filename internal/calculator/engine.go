package calculator

import (
	"fmt"
	"math"

	"secure-calculator/internal/models"
)

// Operation names one of the four arithmetic operations.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// Operations lists the supported operations in presentation order.
var Operations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

// ParseOperation maps a name such as "divide" to its Operation.
func ParseOperation(name string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == name {
			return op, nil
		}
	}
	return "", models.InvalidArgument("calculate", "operation", fmt.Sprintf("%q is not a supported operation", name))
}

// Symbol is the infix operator used when the operation is displayed.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	}
	return "?"
}

// Apply runs op on a and b.
func Apply(op Operation, a, b any) (Number, error) {
	switch op {
	case OpAdd:
		return Add(a, b)
	case OpSubtract:
		return Subtract(a, b)
	case OpMultiply:
		return Multiply(a, b)
	case OpDivide:
		return Divide(a, b)
	}
	return Number{}, models.InvalidArgument("calculate", "operation", fmt.Sprintf("%q is not a supported operation", op))
}

// Add returns a + b.
func Add(a, b any) (Number, error) {
	x, y, err := operands(OpAdd, a, b)
	if err != nil {
		return Number{}, err
	}
	if x.isFloat || y.isFloat {
		return Float(x.Float64() + y.Float64()), nil
	}
	sum := x.i + y.i
	if (y.i > 0 && sum < x.i) || (y.i < 0 && sum > x.i) {
		return Float(float64(x.i) + float64(y.i)), nil
	}
	return Int(sum), nil
}

// Subtract returns a - b.
func Subtract(a, b any) (Number, error) {
	x, y, err := operands(OpSubtract, a, b)
	if err != nil {
		return Number{}, err
	}
	if x.isFloat || y.isFloat {
		return Float(x.Float64() - y.Float64()), nil
	}
	diff := x.i - y.i
	if (y.i > 0 && diff > x.i) || (y.i < 0 && diff < x.i) {
		return Float(float64(x.i) - float64(y.i)), nil
	}
	return Int(diff), nil
}

// Multiply returns a * b.
func Multiply(a, b any) (Number, error) {
	x, y, err := operands(OpMultiply, a, b)
	if err != nil {
		return Number{}, err
	}
	if x.isFloat || y.isFloat {
		return Float(x.Float64() * y.Float64()), nil
	}
	if x.i == 0 || y.i == 0 {
		return Int(0), nil
	}
	p := x.i * y.i
	if p/y.i != x.i || (x.i == -1 && y.i == math.MinInt64) || (y.i == -1 && x.i == math.MinInt64) {
		return Float(float64(x.i) * float64(y.i)), nil
	}
	return Int(p), nil
}

// Divide returns a / b as a float, even for two integers.
func Divide(a, b any) (Number, error) {
	x, y, err := operands(OpDivide, a, b)
	if err != nil {
		return Number{}, err
	}
	if y.IsZero() {
		return Number{}, models.ErrDivisionByZero
	}
	return Float(x.Float64() / y.Float64()), nil
}

func operands(op Operation, a, b any) (Number, Number, error) {
	x, ok := toNumber(a)
	if !ok {
		return Number{}, Number{}, models.InvalidArgument(string(op), "a", "must be a number")
	}
	y, ok := toNumber(b)
	if !ok {
		return Number{}, Number{}, models.InvalidArgument(string(op), "b", "must be a number")
	}
	return x, y, nil
}

// ParseOperand parses a textual operand, reporting failures the same way
// the operations report non-numeric input.
func ParseOperand(op Operation, arg, s string) (Number, error) {
	n, err := ParseNumber(s)
	if err != nil {
		return Number{}, models.InvalidArgument(string(op), arg, "must be a number")
	}
	return n, nil
}
