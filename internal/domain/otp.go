package domain

// OTPPurpose назначение одноразового кода
type OTPPurpose string

const (
	OTPPurposeLogin         OTPPurpose = "login"
	OTPPurposeVerifyEmail   OTPPurpose = "verify_email"
	OTPPurposeResetPassword OTPPurpose = "reset_password"
)

// OTPCodeLength количество цифр в коде
const OTPCodeLength = 6

// IsValid проверяет назначение кода
func (p OTPPurpose) IsValid() bool {
	return p == OTPPurposeLogin || p == OTPPurposeVerifyEmail || p == OTPPurposeResetPassword
}

// IssuesToken returns true if a verified code of this purpose logs the user in
func (p OTPPurpose) IssuesToken() bool {
	return p == OTPPurposeLogin || p == OTPPurposeVerifyEmail
}
