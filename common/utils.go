package common

import "github.com/chewxy/math32"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Float32Bytes appends the little-endian encoding of each value to dst.
//
// Parameters:
//   - dst: the slice to append to (may be nil)
//   - values: the floats to encode
//
// Returns:
//   - []byte: dst with 4 bytes appended per value
func Float32Bytes(dst []byte, values ...float32) []byte {
	for _, v := range values {
		bits := math32.Float32bits(v)
		dst = append(dst, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	return dst
}
