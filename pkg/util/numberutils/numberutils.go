package numberutils

import (
	"strconv"
	"unicode"
)

// IsDigits checks if the given string is non-empty and contains only ASCII digits (0-9).
func IsDigits(str string) bool {
	if str == "" {
		return false
	}
	for _, r := range str {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ToUintWithError converts an unsigned decimal string to uint.
// Signs, spaces and anything IsDigits rejects are reported as errors.
func ToUintWithError(str string) (uint, error) {
	if !IsDigits(str) {
		return 0, strconv.ErrSyntax
	}
	value, err := strconv.ParseUint(str, 10, strconv.IntSize)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
