// File: utils/constants.go
package utils

import "time"


// OTPTTL is how long an issued OTP stays valid.
const OTPTTL = 10 * time.Minute

// SignupSessionPrefix is the prefix for pending registration drafts.
const SignupSessionPrefix = "signup:"

// SignupSessionTTL bounds how long a registration may stay unverified.
const SignupSessionTTL = 30 * time.Minute

// ResetSessionPrefix marks phones whose reset OTP has been verified.
const ResetSessionPrefix = "reset:"

// OTPLength is the number of digits in every issued code.
const OTPLength = 6
