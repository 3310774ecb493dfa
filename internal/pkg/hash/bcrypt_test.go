package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashAndVerify(t *testing.T) {
	h := NewBcrypt(4, "pepper")

	hashed, err := h.Hash("482193")
	require.NoError(t, err)
	assert.NotEqual(t, "482193", string(hashed))

	assert.True(t, h.Verify(string(hashed), "482193"))
	assert.False(t, h.Verify(string(hashed), "482194"))
}

func TestBcryptPepperMismatch(t *testing.T) {
	a := NewBcrypt(4, "pepper-a")
	b := NewBcrypt(4, "pepper-b")

	hashed, err := a.Hash("123456")
	require.NoError(t, err)

	assert.False(t, b.Verify(string(hashed), "123456"))
}
