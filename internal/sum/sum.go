// Package sum provides three equivalent summations of the integers 1..n.
package sum

// ToN computes 1+2+...+n using the closed form, O(1).
func ToN(n int) int {
	return n * (n + 1) / 2
}

// ToNLoop computes the same sum iteratively, O(n).
func ToNLoop(n int) int {
	total := 0
	for i := 1; i <= n; i++ {
		total += i
	}
	return total
}

// ToNRecursive computes the same sum by recursion. O(n) stack depth, so only
// suitable for small n.
func ToNRecursive(n int) int {
	if n <= 1 {
		return n
	}
	return n + ToNRecursive(n-1)
}
