package otp

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumericCodeGenerate(t *testing.T) {
	gen := NewNumericCode()

	for range 200 {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
