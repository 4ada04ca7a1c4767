package routes

import (
	"time"

	"kisansaarthi/handlers"
	"kisansaarthi/middleware"
	"kisansaarthi/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterOptions configures the stub server's engine.
type RouterOptions struct {
	AllowedOrigins    []string
	MaxRequestsPerMin int
	Logger            *zap.Logger
}

// RegisterSignupRoutes registers the registration endpoints. They share the
// signup cookie session.
func RegisterSignupRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.SignupSession())
	{
		api.POST("/signup/", hb.SignupHandler)
		api.POST("/verify-otp/", hb.VerifyOTPHandler)
		api.POST("/resend-otp/", hb.ResendOTPHandler)
	}
}

// RegisterPasswordRoutes registers the forgot-password endpoints.
func RegisterPasswordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/forgot-password")
	{
		api.POST("/send-otp/", hb.ForgotSendOTPHandler)
		api.POST("/verify-otp/", hb.ForgotVerifyOTPHandler)
		api.POST("/reset/", hb.ForgotResetHandler)
	}
}

// RegisterAuthRoutes registers login.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/login/", hb.LoginHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts RouterOptions) {
	logger := opts.Logger
	if logger == nil {
		logger = utils.GetLogger()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))

	RegisterSignupRoutes(r, hb)
	RegisterPasswordRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}

// NewRouter builds a ready engine for hb.
func NewRouter(hb *handlers.HandlerBundle, opts RouterOptions) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r, hb, opts)
	return r
}
