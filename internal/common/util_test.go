package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewID_Format(t *testing.T) {
	id, err := NewID()
	require.NoError(t, err)
	require.Len(t, id, 32)
	_, err = hex.DecodeString(id)
	require.NoError(t, err)
}

func TestNewID_Unique(t *testing.T) {
	a, err := NewID()
	require.NoError(t, err)
	b, err := NewID()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 32
	buf := GenerateRandByteArray(n)
	require.Len(t, buf, n)
	require.NotEqual(t, buf, GenerateRandByteArray(n))
}

func TestWipeByteArray(t *testing.T) {
	b := []byte{1, 2, 3}
	WipeByteArray(b)
	require.Equal(t, []byte{0, 0, 0}, b)
	WipeByteArray(nil) // must not panic
}
