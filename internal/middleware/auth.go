package middleware

import (
	"errors"
	"strings"

	"github.com/LeDuoc95/BE-FEDUU/config"
	"github.com/LeDuoc95/BE-FEDUU/internal/dto"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
	ctxEmail    = "email"
	ctxUserRole = "user_role"
)

// parseToken reads the access token from the access_token cookie or the
// Authorization header.
func parseToken(c *gin.Context) (*authsdk.UserContext, error) {
	tokenString, err := c.Cookie("access_token")
	if err != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return nil, authsdk.ErrNoToken
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || (scheme != "Bearer" && scheme != "JWT") || token == "" {
			return nil, errors.New("malformed authorization header")
		}
		tokenString = token
	}

	return authsdk.ParseToken(tokenString, config.Conf.JWT.Secret)
}

func setUser(c *gin.Context, user *authsdk.UserContext) {
	c.Set(ctxUserID, user.UserID)
	c.Set(ctxUsername, user.Username)
	c.Set(ctxEmail, user.Email)
	c.Set(ctxUserRole, user.Role)
}

// JWTAuth rejects requests without a valid access token
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := parseToken(c)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(err.Error()),
			))
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalJWTAuth attaches the user when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := parseToken(c); err == nil && user != nil {
			setUser(c, user)
		}
		c.Next()
	}
}

// RequireRoles must run after JWTAuth
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		dto.ErrorResponse(c, response.ErrForbidden("role "+role+" may not access this resource"))
		c.Abort()
	}
}

// CurrentUser returns the caller attached by the auth middleware. An
// anonymous caller has UserID 0.
func CurrentUser(c *gin.Context) *authsdk.UserContext {
	return &authsdk.UserContext{
		UserID:   c.GetUint(ctxUserID),
		Username: c.GetString(ctxUsername),
		Email:    c.GetString(ctxEmail),
		Role:     c.GetString(ctxUserRole),
	}
}
