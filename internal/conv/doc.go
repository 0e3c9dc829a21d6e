// Package conv provides checked integer conversions.
//
// Use them where a value crosses from a 64-bit address space into a
// narrower type: page counts into int, bucket offsets into uint32. For
// conversions that are provably safe by construction (loop indices, values
// already validated against a ValueType) use a plain cast instead.
package conv
