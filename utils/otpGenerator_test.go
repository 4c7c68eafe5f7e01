package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPLengthAndCharset(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateOTP(length)
		require.NoError(t, err)
		require.Len(t, code, length)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9', "unexpected character %q in code %q", ch, code)
		}
	}
}

func TestGenerateOTPVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP(6)
		require.NoError(t, err)
		seen[code] = true
	}
	// 50 six-digit codes colliding down to a handful would mean a broken
	// random source.
	assert.Greater(t, len(seen), 40)
}

func TestHashOTPDeterministic(t *testing.T) {
	assert.Equal(t, HashOTP("123456", "secret"), HashOTP("123456", "secret"))
	assert.NotEqual(t, HashOTP("123456", "secret"), HashOTP("123457", "secret"))
	// The digest is keyed: a different secret must change it.
	assert.NotEqual(t, HashOTP("123456", "secret"), HashOTP("123456", "other"))
	assert.Len(t, HashOTP("123456", "secret"), 64)
}

func TestCheckOTPHash(t *testing.T) {
	stored := HashOTP("654321", "secret")
	assert.True(t, CheckOTPHash("654321", "secret", stored))
	assert.False(t, CheckOTPHash("654322", "secret", stored))
	assert.False(t, CheckOTPHash("654321", "other", stored))
}
