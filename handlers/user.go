package handlers

import (
	"kisansaarthi/middleware"
	"kisansaarthi/models"
	"kisansaarthi/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SignupHandler handles POST /api/signup/.
func SignupHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft models.RegistrationDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			badRequest(c, err)
			return
		}
		if err := svc.Signup(c.Request.Context(), middleware.SignupSessionID(c), draft); err != nil {
			respondError(c, err)
			return
		}
		getLogger(c).Info("Signup started", zap.String("phone", draft.Phone))
		succeed(c, "OTP sent successfully")
	}
}

// LoginHandler handles POST /api/login/.
func LoginHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := svc.Login(c.Request.Context(), req.Phone, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		authenticated(c, "Login successful", res)
	}
}
