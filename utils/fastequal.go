// Package utils holds small helpers without a better home.
package utils

// FastEqual compares two byte slices for equality. Unlike bytes.Equal it
// bails on the first mismatched length without a function call, which matters
// on the hot paths comparing 32 byte keys.
func FastEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
