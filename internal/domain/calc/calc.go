// Package calc holds the arithmetic behind the math routes. Every operation
// is total: NaN inputs propagate and results saturate to infinity instead of
// failing.
package calc

import (
	"math"

	"github.com/okian/featurelab/internal/domain/coerce"
)

// Add returns a + b.
func Add(a, b coerce.Number) coerce.Number {
	return a + b
}

// Cube returns n raised to the third power.
func Cube(n coerce.Number) coerce.Number {
	return Pow(n, 3)
}

// Pow returns base raised to exp with the exponentiation rules of the `**`
// operator, which differ from math.Pow for NaN exponents and for ±1 raised
// to an infinite power.
func Pow(base, exp coerce.Number) coerce.Number {
	b, e := base.Float64(), exp.Float64()
	if math.IsNaN(e) {
		return coerce.NaN()
	}
	if math.IsInf(e, 0) && math.Abs(b) == 1 {
		return coerce.NaN()
	}
	return coerce.Number(math.Pow(b, e))
}

// Factorial multiplies 2..n. Anything below 2, including negative numbers
// and NaN, yields 1.
func Factorial(n coerce.Number) coerce.Number {
	result := 1.0
	limit := n.Float64()
	for i := 2.0; i <= limit; i++ {
		result *= i
		// The product never leaves infinity once it gets there.
		if math.IsInf(result, 1) {
			break
		}
	}
	return coerce.Number(result)
}

// RectangleArea returns width * height.
func RectangleArea(width, height coerce.Number) coerce.Number {
	return width * height
}
