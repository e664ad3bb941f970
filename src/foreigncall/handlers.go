package foreigncall

import (
	"errors"
	"fmt"
	"strings"

	"foreign-call-resolver/src/field"
)

var (
	// ErrNonResidue keeps the reference implementation's "division by zero"
	// wording on the wire, surfaced as a structured error instead of a
	// process abort.
	ErrNonResidue     = errors.New("division by zero: operand is not a square in the scalar field")
	ErrMissingOperand = errors.New("foreign call is missing an operand")
	ErrSqrtInvariant  = errors.New("computed root does not square back to the operand")
)

// HandleGetSqrt computes a modular square root of inputs[0] in the BN254
// scalar field and returns its decimal form. Extra inputs are ignored in the
// current protocol version.
func HandleGetSqrt(req RequestData) (string, error) {
	x, err := parseOperand(req.Inputs, 0)
	if err != nil {
		return "", err
	}

	if !field.IsSquare(x) {
		return "", ErrNonResidue
	}

	root, ok := field.Sqrt(x)
	if !ok {
		// IsSquare said yes, Sqrt said no: a bug in the field primitive.
		return "", ErrSqrtInvariant
	}
	if square := field.Mul(root, root); !square.Equal(&x) {
		return "", ErrSqrtInvariant
	}

	return field.ToDecimal(root), nil
}

// HandleGetSum returns inputs[0] + inputs[1] mod r.
func HandleGetSum(req RequestData) (string, error) {
	a, b, err := parseOperandPair(req.Inputs)
	if err != nil {
		return "", err
	}
	return field.ToDecimal(field.Add(a, b)), nil
}

// HandleGetDiff returns inputs[0] - inputs[1] mod r.
func HandleGetDiff(req RequestData) (string, error) {
	a, b, err := parseOperandPair(req.Inputs)
	if err != nil {
		return "", err
	}
	return field.ToDecimal(field.Sub(a, b)), nil
}

// parseOperand normalizes one operand string into a field element. The
// caller zero-pads operands to fixed width, so leading '0' characters are
// stripped first; a fully stripped string is the zero element. The remainder
// is consumed as DECIMAL; the upstream schema names the operands hex, but
// existing callers depend on the decimal interpretation.
func parseOperand(inputs []string, i int) (field.Element, error) {
	if i >= len(inputs) {
		return field.Element{}, fmt.Errorf("%w: want at least %d inputs, got %d", ErrMissingOperand, i+1, len(inputs))
	}

	trimmed := strings.TrimLeft(inputs[i], "0")
	if trimmed == "" {
		trimmed = "0"
	}

	x, err := field.FromDecimal(trimmed)
	if err != nil {
		return field.Element{}, fmt.Errorf("input %d: %w", i, err)
	}
	return x, nil
}

func parseOperandPair(inputs []string) (field.Element, field.Element, error) {
	a, err := parseOperand(inputs, 0)
	if err != nil {
		return field.Element{}, field.Element{}, err
	}
	b, err := parseOperand(inputs, 1)
	if err != nil {
		return field.Element{}, field.Element{}, err
	}
	return a, b, nil
}
