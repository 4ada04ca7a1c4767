package handlers

import (
	"net/http"

	"kisansaarthi/middleware"
	"kisansaarthi/models"
	"kisansaarthi/services/user"
	"kisansaarthi/utils"

	"github.com/gin-gonic/gin"
)

// VerifyOTPHandler handles POST /api/verify-otp/ for the signup in the
// caller's cookie session.
func VerifyOTPHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OTPVerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "OTP is required")
			return
		}
		res, err := svc.VerifySignupOTP(c.Request.Context(), middleware.SignupSessionID(c), req.OTP)
		if err != nil {
			respondError(c, err)
			return
		}
		authenticated(c, "Signup successful", res)
	}
}

// ResendOTPHandler handles POST /api/resend-otp/. The body is ignored.
func ResendOTPHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ResendSignupOTP(c.Request.Context(), middleware.SignupSessionID(c)); err != nil {
			respondError(c, err)
			return
		}
		succeed(c, "OTP resent successfully")
	}
}
