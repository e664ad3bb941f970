package field

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is a BN254 scalar in canonical reduced form, i.e. an integer in
// [0, r) where r is the order of the scalar field.
type Element = fr.Element

var ErrNotDecimal = errors.New("operand is not a nonnegative decimal string")

// Modulus returns r, the BN254 scalar field order.
func Modulus() *big.Int {
	return ecc.BN254.ScalarField()
}

// FromDecimal parses a nonnegative decimal string into a field element.
// Values of r or more are reduced modulo r.
func FromDecimal(s string) (Element, error) {
	var x Element
	if len(s) == 0 {
		return x, ErrNotDecimal
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return x, ErrNotDecimal
		}
	}

	var n big.Int
	n.SetString(s, 10)
	x.SetBigInt(&n)
	return x, nil
}

// IsSquare reports whether x has a square root in the field, by Euler's
// criterion. Zero counts as a square (its root is zero).
func IsSquare(x Element) bool {
	return x.Legendre() >= 0
}

// Sqrt returns a y with y*y == x, or false if x is a quadratic non-residue.
// Since r = 1 mod 4, gnark-crypto uses the general Tonelli-Shanks procedure.
// Either of the two candidate roots {y, r-y} may be returned; no
// canonicalization is applied on top of what gnark-crypto picks.
func Sqrt(x Element) (Element, bool) {
	var root Element
	if root.Sqrt(&x) == nil {
		return Element{}, false
	}
	return root, true
}

// ToDecimal returns the canonical base-10 representation of x, with no
// leading zeros except for zero itself.
func ToDecimal(x Element) string {
	return x.String()
}

func Add(a, b Element) Element {
	var s Element
	s.Add(&a, &b)
	return s
}

func Sub(a, b Element) Element {
	var d Element
	d.Sub(&a, &b)
	return d
}

func Mul(a, b Element) Element {
	var p Element
	p.Mul(&a, &b)
	return p
}
