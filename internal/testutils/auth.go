package testutils

import (
	"fmt"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/internal/model/user"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"
)

// BearerToken returns an Authorization header value for u signed with secret
func BearerToken(u *user.User, secret string) string {
	token, err := authsdk.GenerateToken(authsdk.UserContext{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}, secret, time.Hour)
	if err != nil {
		panic(fmt.Sprintf("Failed to sign test token: %v", err))
	}
	return "Bearer " + token
}
