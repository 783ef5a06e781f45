package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeUint64ToInt64(t *testing.T) {
	v, err := SafeUint64ToInt64(21_000)
	require.NoError(t, err)
	require.Equal(t, int64(21_000), v)

	v, err = SafeUint64ToInt64(math.MaxInt64)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), v)

	_, err = SafeUint64ToInt64(math.MaxInt64 + 1)
	require.Error(t, err)
}
