package util

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
)

const (
	otpFloor        = 100000
	otpSpan         = 900000
	resetTokenBytes = 32
)

// GenerateResetOTP returns a uniformly random code in [100000, 999999].
func GenerateResetOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpFloor, 10), nil
}

// GenerateResetToken returns 32 random bytes hex-encoded (64 characters).
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
