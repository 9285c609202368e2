package util

import (
	"regexp"
	"strconv"
	"testing"
)

func TestGenerateResetOTPRange(t *testing.T) {
	pattern := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 500; i++ {
		otp, err := GenerateResetOTP()
		if err != nil {
			t.Fatalf("GenerateResetOTP returned error: %v", err)
		}
		if !pattern.MatchString(otp) {
			t.Fatalf("unexpected otp format %q", otp)
		}
		n, _ := strconv.Atoi(otp)
		if n < 100000 || n > 999999 {
			t.Fatalf("otp %d out of range", n)
		}
	}
}

func TestGenerateResetToken(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{64}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := GenerateResetToken()
		if err != nil {
			t.Fatalf("GenerateResetToken returned error: %v", err)
		}
		if !pattern.MatchString(token) {
			t.Fatalf("unexpected token format %q", token)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token generated")
		}
		seen[token] = struct{}{}
	}
}
