// Package monotonic provides monotonicity checks for slices of ordered
// values. All checks return true for slices with fewer than two elements.
package monotonic

import "cmp"

// StrictlyIncreasing reports whether every element is greater than its
// predecessor.
func StrictlyIncreasing[T cmp.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return false
		}
	}

	return true
}

// StrictlyDecreasing reports whether every element is less than its
// predecessor.
func StrictlyDecreasing[T cmp.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i] >= s[i-1] {
			return false
		}
	}

	return true
}

// NonDecreasing reports whether no element is less than its predecessor.
func NonDecreasing[T cmp.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}

	return true
}

// NonIncreasing reports whether no element is greater than its predecessor.
func NonIncreasing[T cmp.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1] {
			return false
		}
	}

	return true
}
