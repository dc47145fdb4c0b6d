// Package fixed converts decimals with exactly one fractional digit to and
// from integers scaled by ten, so "-3.7" is -37.
package fixed

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is returned for value text that is not [-]digits.digit.
var ErrSyntax = errors.New("invalid fixed-point value")

// maxDigits keeps the scaled value inside an int64.
const maxDigits = 18

// Parse reads b as an optionally negative decimal with exactly one
// fractional digit and returns it scaled by ten. The decimal point adds no
// digit, it only fixes the scale.
func Parse(b []byte) (int64, error) {
	var (
		v      int64
		i      int
		neg    bool
		digits int
		dot    = -1
	)
	if len(b) > 0 && b[0] == '-' {
		neg = true
		i++
	}
	for ; i < len(b); i++ {
		c := b[i]
		switch {
		case c == '.':
			if dot >= 0 || digits == 0 {
				return 0, syntaxError(b)
			}
			dot = digits
		case c >= '0' && c <= '9':
			digits++
			if digits > maxDigits {
				return 0, syntaxError(b)
			}
			v = v*10 + int64(c-'0')
		default:
			return 0, syntaxError(b)
		}
	}
	if dot < 0 || digits-dot != 1 {
		return 0, syntaxError(b)
	}
	if neg {
		return -v, nil
	}
	return v, nil
}

func syntaxError(b []byte) error {
	return fmt.Errorf("%w: %q", ErrSyntax, b)
}

// Append appends the decimal form of the scaled value v to dst.
func Append(dst []byte, v int64) []byte {
	u := uint64(v)
	if v < 0 {
		dst = append(dst, '-')
		u = -u
	}
	dst = strconv.AppendUint(dst, u/10, 10)
	return append(dst, '.', byte('0'+u%10))
}

// Format returns the decimal form of the scaled value v.
func Format(v int64) string {
	return string(Append(make([]byte, 0, 8), v))
}
