package conv

import (
	"fmt"
	"math"
)

// Int64ToInt converts int64 to int safely.
func Int64ToInt(v int64) (int, error) {
	if v < math.MinInt || v > math.MaxInt {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int", v)
	}
	return int(v), nil
}

// Int64ToUint32 converts int64 to uint32 safely.
func Int64ToUint32(v int64) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}
