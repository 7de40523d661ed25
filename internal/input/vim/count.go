package vim

import "math"

// maxCount bounds every count so that products of counts cannot overflow.
const maxCount = math.MaxInt / 10

// Digits is an ordered buffer of typed count digits.
type Digits []rune

// IsCountStart reports whether r can begin a count. A leading '0' is the
// line-start motion, not a count.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// IsCountDigit reports whether r can continue a count.
func IsCountDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Value parses the buffer. An empty buffer is 0; values saturate at
// maxCount rather than wrapping.
func (d Digits) Value() int {
	n := 0
	for _, r := range d {
		digit := int(r - '0')
		if n > (maxCount-digit)/10 {
			return maxCount
		}
		n = n*10 + digit
	}
	return n
}

// String returns the digits as typed.
func (d Digits) String() string {
	return string(d)
}

// CombineCounts multiplies two counts, each defaulting to 1 when it is
// not positive, so "2d3w" deletes 6 words. The product saturates.
func CombineCounts(a, b int) int {
	if a <= 0 {
		a = 1
	}
	if b <= 0 {
		b = 1
	}
	if a > maxCount/b {
		return maxCount
	}
	return a * b
}
