package utils

import (
	"fmt"
	"math"
)

// SafeUint64ToInt64 converts amounts for APIs that take signed integers,
// returning an error if overflow would occur.
func SafeUint64ToInt64(value uint64) (int64, error) {
	if value > math.MaxInt64 {
		return 0, fmt.Errorf("value %d exceeds int64 maximum %d", value, int64(math.MaxInt64))
	}

	return int64(value), nil //nolint:gosec // Conversion is safe after overflow check
}
