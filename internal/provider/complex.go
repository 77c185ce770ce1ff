package provider

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	op "github.com/XJIeI5/calculator/internal/operation"
)

func complexOperations() map[string]op.Operation[complex128] {
	return map[string]op.Operation[complex128]{
		"+":   op.NewBinary(func(a, b complex128) complex128 { return a + b }),
		"-":   op.NewBinary(func(a, b complex128) complex128 { return a - b }),
		"*":   op.NewBinary(func(a, b complex128) complex128 { return a * b }),
		"/":   op.NewBinary(DivComplex),
		"sin": op.NewUnary(cmplx.Sin),
		"cos": op.NewUnary(cmplx.Cos),
	}
}

func NewComplex() *Registry[complex128] {
	return NewRegistry(ParseComplex, complexOperations())
}

// DivComplex divides a by b. A zero divisor gives (+Inf, +Inf) whatever the
// sign of a.
func DivComplex(a, b complex128) complex128 {
	if b == 0 {
		return complex(math.Inf(1), math.Inf(1))
	}
	ar, ai := real(a), imag(a)
	br, bi := real(b), imag(b)
	denom := br*br + bi*bi
	return complex((ar*br+ai*bi)/denom, (ai*br-ar*bi)/denom)
}

// ParseComplex reads "a+bi", "a-bi" or "bi". The trailing i is required;
// both parts follow the real literal grammar.
func ParseComplex(token string) (complex128, error) {
	body, ok := strings.CutSuffix(token, "i")
	if !ok || body == "" {
		return 0, fmt.Errorf("%w: %q is not a complex number", ErrNumberFormat, token)
	}

	re, im := "", body
	if k := imagStart(body); k > 0 {
		re, im = body[:k], body[k:]
	}

	var r float64
	if re != "" {
		v, err := ParseReal(re)
		if err != nil {
			return 0, fmt.Errorf("%w: bad real part of %q", ErrNumberFormat, token)
		}
		r = v
	}
	i, err := ParseReal(im)
	if err != nil {
		return 0, fmt.Errorf("%w: bad imaginary part of %q", ErrNumberFormat, token)
	}
	return complex(r, i), nil
}

// imagStart finds the sign that opens the imaginary part, skipping a leading
// sign and exponent signs. It returns 0 when there is no real part.
func imagStart(body string) int {
	for k := len(body) - 1; k > 0; k-- {
		if body[k] != '+' && body[k] != '-' {
			continue
		}
		if prev := body[k-1]; prev == 'e' || prev == 'E' {
			continue
		}
		return k
	}
	return 0
}

func FormatComplex(c complex128) string {
	im := FormatReal(imag(c))
	if !strings.HasPrefix(im, "-") && !strings.HasPrefix(im, "+") {
		im = "+" + im
	}
	return FormatReal(real(c)) + im + "i"
}

func RealToComplex(v float64) complex128 {
	return complex(v, 0)
}

// ComplexToReal fails with ErrDomain when c has an imaginary part.
func ComplexToReal(c complex128) (float64, error) {
	if imag(c) != 0 {
		return 0, fmt.Errorf("%w: %s has a non-zero imaginary part", ErrDomain, FormatComplex(c))
	}
	return real(c), nil
}
