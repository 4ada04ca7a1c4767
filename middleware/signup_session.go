package middleware

import (
	"net/http"

	"kisansaarthi/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SignupCookieName carries the pending signup between its three calls.
	SignupCookieName = "kisan_signup"
	// SignupSessionKey is the gin context key holding the session id.
	SignupSessionKey = "signupSessionID"
)

// SignupSession makes sure the caller has a signup session cookie and
// exposes its id to handlers. A new id is minted when the cookie is missing
// or not a UUID.
func SignupSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SignupCookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SignupCookieName, id, int(utils.SignupSessionTTL.Seconds()), "/api/", "", false, true)
		}
		c.Set(SignupSessionKey, id)
		c.Next()
	}
}

// SignupSessionID returns the id set by SignupSession.
func SignupSessionID(c *gin.Context) string {
	return c.GetString(SignupSessionKey)
}
