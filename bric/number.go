package bric

import (
	"math"
	"math/big"
)

// parseNumberText converts the raw decimal text of a JSON number token into
// a float64, routing through big.Float the way the teacher's rat.go routes
// numeric keyword values through big.Rat: a naive strconv.ParseFloat on
// very small exponents (1.23e-12) is fine in practice, but big.Float gives
// the generator a single, auditable place where numeric precision policy
// lives, and it is the same technique already proven against keyword values
// like multipleOf/minimum in the teacher.
//
// The AllowNaNInfinity dialect feeds this function the bare words
// "NaN"/"Infinity"/"-Infinity" instead of decimal digits, so those are
// special-cased before reaching big.Float, which only understands the
// shorthand "Inf"/"-Inf" spellings.
func parseNumberText(text string) (float64, error) {
	switch text {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	f, _, err := big.ParseFloat(text, 10, 64, big.ToNearestEven)
	if err != nil {
		return 0, err
	}
	out, _ := f.Float64()
	return out, nil
}
