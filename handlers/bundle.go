package handlers

import (
	"net/http"

	"kisansaarthi/models"
	"kisansaarthi/services/user"
	"kisansaarthi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups the endpoint handlers of the backend contract.
type HandlerBundle struct {
	Users  user.UserService
	Health *utils.HealthMonitor

	// Signup endpoints
	SignupHandler    gin.HandlerFunc
	VerifyOTPHandler gin.HandlerFunc
	ResendOTPHandler gin.HandlerFunc

	// Password recovery endpoints
	ForgotSendOTPHandler   gin.HandlerFunc
	ForgotVerifyOTPHandler gin.HandlerFunc
	ForgotResetHandler     gin.HandlerFunc

	LoginHandler  gin.HandlerFunc
	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler to svc. health may be nil.
func NewHandlerBundle(svc user.UserService, health *utils.HealthMonitor) *HandlerBundle {
	return &HandlerBundle{
		Users:                  svc,
		Health:                 health,
		SignupHandler:          SignupHandler(svc),
		VerifyOTPHandler:       VerifyOTPHandler(svc),
		ResendOTPHandler:       ResendOTPHandler(svc),
		ForgotSendOTPHandler:   ForgotSendOTPHandler(svc),
		ForgotVerifyOTPHandler: ForgotVerifyOTPHandler(svc),
		ForgotResetHandler:     ForgotResetHandler(svc),
		LoginHandler:           LoginHandler(svc),
		HealthHandler:          HealthHandler(health),
	}
}

var statusByCode = map[user.ErrorCode]int{
	user.CodeInvalid:         http.StatusBadRequest,
	user.CodeUnauthorized:    http.StatusUnauthorized,
	user.CodeNotFound:        http.StatusNotFound,
	user.CodeTooManyRequests: http.StatusTooManyRequests,
	user.CodeUnavailable:     http.StatusInternalServerError,
}

// respondError renders a service error in the contract's failure envelope.
func respondError(c *gin.Context, err error) {
	if e, ok := user.AsError(err); ok {
		status, known := statusByCode[e.Code]
		if !known {
			status = http.StatusInternalServerError
		}
		utils.JSONError(c, status, e.Message)
		return
	}
	getLogger(c).Error("unexpected service error", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, user.ErrInternal.Message)
}

func badRequest(c *gin.Context, err error) {
	getLogger(c).Warn("Invalid request body", zap.Error(err))
	utils.JSONError(c, http.StatusBadRequest, "Invalid request")
}

func succeed(c *gin.Context, message string) {
	t := true
	c.JSON(http.StatusOK, models.APIResponse{Success: &t, Message: message})
}

func authenticated(c *gin.Context, message string, res *user.AuthResponse) {
	t := true
	c.JSON(http.StatusOK, models.APIResponse{
		Success: &t,
		Message: message,
		Token:   res.Token,
		User:    &models.LoginUser{ID: res.ID, Name: res.Name, Phone: res.Phone},
	})
}

// HealthHandler reports the last health check. Without a monitor it only
// says the server is up.
func HealthHandler(m *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		st := m.Status()
		status, code := "ok", http.StatusOK
		if !st.Healthy() {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "services": st.Services, "checkedAt": st.CheckedAt})
	}
}
