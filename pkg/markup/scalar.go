package markup

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// scalarString returns the textual form of non-string raw scalars. Numbers
// never contain markup-significant characters, so the result is written
// unescaped.
func scalarString(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return formatFloat(float64(n), 32), true
	case float64:
		return formatFloat(n, 64), true
	case *big.Int:
		if n == nil {
			return "", false
		}
		return n.String(), true
	case *big.Float:
		if n == nil {
			return "", false
		}
		return n.Text('g', -1), true
	}
	return "", false
}

// formatFloat prints f the way a browser prints a number: integral values
// without a fraction, exponent notation only for very large or very small
// magnitudes.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, bits)
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// attrValueString stringifies a non-boolean attribute value.
func attrValueString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := scalarString(v); ok {
		return s
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
