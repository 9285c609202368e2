package service

import (
	"fmt"
	"html"
	"time"
)

func composeOTPEmail(brand, otp string, ttl time.Duration) (subject, body string) {
	subject = "Your OTP for Password Reset"
	body = fmt.Sprintf(`<div style="font-family: Helvetica, sans-serif; color: #000;">
  <h1>%s Password Reset</h1>
  <p>Dear User,</p>
  <p>Your OTP is:</p>
  <h2 style="color:#DC2626;">%s</h2>
  <p>This OTP is valid for <b>%s</b>.</p>
  <p>Do not share it with anyone.</p>
</div>`, html.EscapeString(brand), otp, validityText(ttl))
	return subject, body
}

func validityText(ttl time.Duration) string {
	if ttl%time.Minute != 0 {
		return ttl.String()
	}
	minutes := int(ttl / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
