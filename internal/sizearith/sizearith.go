// Package sizearith provides overflow-checked arithmetic over unsigned
// sizes. schedule.Store.Append uses Add to check the store's growth; the
// parser's buffers and the job runner's output capture are not routed
// through it.
package sizearith

import "math"

// Add returns a+b and reports whether the addition wrapped.
func Add(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum < a
}

// Mul returns a*b and reports whether the multiplication wrapped.
func Mul(a, b uint64) (uint64, bool) {
	product := a * b
	wrapped := b != 0 && a > math.MaxUint64/b
	return product, wrapped
}
