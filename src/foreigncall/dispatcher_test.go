package foreigncall

import (
	"errors"
	"io"
	"math/big"
	"strings"
	"testing"

	"foreign-call-resolver/src/field"
	"foreign-call-resolver/src/logger"
)

func testDispatcher() *Dispatcher {
	return NewDispatcher(logger.New().WithOutput(io.Discard))
}

func sqrtRequest(inputs ...string) []RequestData {
	return []RequestData{{SessionID: 1, Function: "getSqrt", Inputs: inputs}}
}

// assertSquaresTo checks that the decimal result squares back to want mod r.
// Either of the two candidate roots is acceptable.
func assertSquaresTo(t *testing.T, result, want string) {
	t.Helper()

	root, err := field.FromDecimal(result)
	if err != nil {
		t.Fatalf("Result %q is not a canonical decimal: %v", result, err)
	}
	x, _ := field.FromDecimal(want)
	if square := field.Mul(root, root); !square.Equal(&x) {
		t.Errorf("Result %s does not square to %s", result, want)
	}
	if strings.HasPrefix(result, "0") && result != "0" {
		t.Errorf("Result %q has leading zeros", result)
	}
}

func TestResolveGetSqrt(t *testing.T) {
	tests := []struct {
		name    string
		operand string
	}{
		{"Nine", "9"},
		{"Four", "4"},
		{"One", "1"},
		{"Zero", "0"},
	}

	d := testDispatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := d.Resolve(sqrtRequest(tt.operand))
			if err != nil {
				t.Fatalf("Failed to resolve getSqrt(%s): %v", tt.operand, err)
			}
			assertSquaresTo(t, result, tt.operand)
		})
	}
}

func TestResolveGetSqrtOfNineIsThreeOrNegThree(t *testing.T) {
	result, err := testDispatcher().Resolve(sqrtRequest("9"))
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}

	rMinus3 := new(big.Int).Sub(field.Modulus(), big.NewInt(3)).String()
	if result != "3" && result != rMinus3 {
		t.Errorf("Expected 3 or %s, got %s", rMinus3, result)
	}
}

func TestResolveLeadingZeroInsensitivity(t *testing.T) {
	d := testDispatcher()

	plain, err := d.Resolve(sqrtRequest("9"))
	if err != nil {
		t.Fatalf("Failed to resolve plain operand: %v", err)
	}

	paddings := []string{
		"09",
		"0000000009",
		"0000000000000000000000000000000000000000000000000000000000000009",
	}
	for _, padded := range paddings {
		got, err := d.Resolve(sqrtRequest(padded))
		if err != nil {
			t.Fatalf("Failed to resolve padded operand %q: %v", padded, err)
		}
		if got != plain {
			t.Errorf("Padded operand %q resolved to %s, plain to %s", padded, got, plain)
		}
	}
}

func TestResolveAllZeroOperandIsZero(t *testing.T) {
	result, err := testDispatcher().Resolve(sqrtRequest("0000000000000000"))
	if err != nil {
		t.Fatalf("Failed to resolve zero operand: %v", err)
	}
	if result != "0" {
		t.Errorf("Expected 0, got %s", result)
	}
}

func TestResolveNonResidueFails(t *testing.T) {
	_, err := testDispatcher().Resolve(sqrtRequest("5"))
	if !errors.Is(err, ErrNonResidue) {
		t.Fatalf("Expected non-residue error, got %v", err)
	}
}

func TestResolveExtraInputsIgnored(t *testing.T) {
	result, err := testDispatcher().Resolve(sqrtRequest("4", "junk", "more junk"))
	if err != nil {
		t.Fatalf("Failed to resolve with extra inputs: %v", err)
	}
	assertSquaresTo(t, result, "4")
}

func TestResolveUnknownFunction(t *testing.T) {
	result, err := testDispatcher().Resolve([]RequestData{{Function: "getFoo", Inputs: []string{"1"}}})
	if err != nil {
		t.Fatalf("Unknown function must not error: %v", err)
	}
	if result != ResultUnknownFunction {
		t.Errorf("Expected %q, got %q", ResultUnknownFunction, result)
	}
}

func TestResolveOnlyFirstRequestIsDispatched(t *testing.T) {
	requests := []RequestData{
		{Function: "getSqrt", Inputs: []string{"4"}},
		{Function: "getFoo", Inputs: []string{"ignored"}},
	}

	result, err := testDispatcher().Resolve(requests)
	if err != nil {
		t.Fatalf("Failed to resolve batch: %v", err)
	}
	assertSquaresTo(t, result, "4")
}

func TestResolveMissingOperand(t *testing.T) {
	_, err := testDispatcher().Resolve(sqrtRequest())
	if !errors.Is(err, ErrMissingOperand) {
		t.Fatalf("Expected missing operand error, got %v", err)
	}
}

func TestResolveNonDecimalOperand(t *testing.T) {
	_, err := testDispatcher().Resolve(sqrtRequest("00abc"))
	if !errors.Is(err, field.ErrNotDecimal) {
		t.Fatalf("Expected decimal parse error, got %v", err)
	}
}

func TestResolveGetSum(t *testing.T) {
	d := testDispatcher()

	result, err := d.Resolve([]RequestData{{Function: "getSum", Inputs: []string{"0009", "4"}}})
	if err != nil {
		t.Fatalf("Failed to resolve getSum: %v", err)
	}
	if result != "13" {
		t.Errorf("Expected 13, got %s", result)
	}

	rMinus1 := new(big.Int).Sub(field.Modulus(), big.NewInt(1)).String()
	result, err = d.Resolve([]RequestData{{Function: "getSum", Inputs: []string{rMinus1, "3"}}})
	if err != nil {
		t.Fatalf("Failed to resolve wrapping getSum: %v", err)
	}
	if result != "2" {
		t.Errorf("Expected (r-1)+3 = 2, got %s", result)
	}
}

func TestResolveGetDiff(t *testing.T) {
	d := testDispatcher()

	result, err := d.Resolve([]RequestData{{Function: "getDiff", Inputs: []string{"9", "4"}}})
	if err != nil {
		t.Fatalf("Failed to resolve getDiff: %v", err)
	}
	if result != "5" {
		t.Errorf("Expected 5, got %s", result)
	}

	rMinus5 := new(big.Int).Sub(field.Modulus(), big.NewInt(5)).String()
	result, err = d.Resolve([]RequestData{{Function: "getDiff", Inputs: []string{"4", "9"}}})
	if err != nil {
		t.Fatalf("Failed to resolve wrapping getDiff: %v", err)
	}
	if result != rMinus5 {
		t.Errorf("Expected 4-9 = r-5, got %s", result)
	}
}

func TestResolveGetSumNeedsTwoOperands(t *testing.T) {
	_, err := testDispatcher().Resolve([]RequestData{{Function: "getSum", Inputs: []string{"9"}}})
	if !errors.Is(err, ErrMissingOperand) {
		t.Fatalf("Expected missing operand error, got %v", err)
	}
}

func TestResolveIsStateless(t *testing.T) {
	d := testDispatcher()

	first, err := d.Resolve(sqrtRequest("9"))
	if err != nil {
		t.Fatalf("Failed first resolve: %v", err)
	}
	if _, err := d.Resolve(sqrtRequest("4")); err != nil {
		t.Fatalf("Failed interleaved resolve: %v", err)
	}
	again, err := d.Resolve(sqrtRequest("9"))
	if err != nil {
		t.Fatalf("Failed repeated resolve: %v", err)
	}

	if first != again {
		t.Errorf("Same request resolved differently: %s then %s", first, again)
	}
}
