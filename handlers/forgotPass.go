package handlers

import (
	"kisansaarthi/models"
	"kisansaarthi/services/user"

	"github.com/gin-gonic/gin"
)

// ForgotSendOTPHandler handles POST /api/forgot-password/send-otp/.
func ForgotSendOTPHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PhoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := svc.SendResetOTP(c.Request.Context(), req.Phone); err != nil {
			respondError(c, err)
			return
		}
		succeed(c, "OTP sent successfully")
	}
}

// ForgotVerifyOTPHandler handles POST /api/forgot-password/verify-otp/.
func ForgotVerifyOTPHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PhoneOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := svc.VerifyResetOTP(c.Request.Context(), req.Phone, req.OTP); err != nil {
			respondError(c, err)
			return
		}
		succeed(c, "OTP verified successfully")
	}
}

// ForgotResetHandler handles POST /api/forgot-password/reset/.
func ForgotResetHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := svc.ResetPassword(c.Request.Context(), req.Phone, req.NewPassword)
		if err != nil {
			respondError(c, err)
			return
		}
		authenticated(c, "Password reset successful", res)
	}
}
