package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

var otpDigits = []byte("0123456789")

// GenerateOTP produces a numeric code of the given length. Each digit is
// drawn independently from crypto/rand, so codes keep a uniform
// distribution even for lengths that are not a power of ten.
func GenerateOTP(length int) (string, error) {
	max := big.NewInt(int64(len(otpDigits)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		code[i] = otpDigits[n.Int64()]
	}
	return string(code), nil
}

// HashOTP returns the hex HMAC-SHA256 digest of a code under the given
// secret. Deterministic: the stored digest is later compared against the
// digest of the candidate code.
func HashOTP(code, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// CheckOTPHash compares a candidate code against a stored digest in
// constant time.
func CheckOTPHash(code, secret, storedHash string) bool {
	return hmac.Equal([]byte(HashOTP(code, secret)), []byte(storedHash))
}
