package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/photobook/user-image-service/pkg/helpers"
	"github.com/photobook/user-image-service/pkg/response"
)

const CtxClaimsKey = "claims"

// JWTAuth reads the Bearer token, validates it, and injects its claims into the context
func JWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Abort(c, http.StatusUnauthorized, "Missing access token")
			return
		}
		claims, err := jwt.ParseAccessToken(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, jwtv5.ErrTokenExpired) {
				response.Abort(c, http.StatusUnauthorized, "Token has expired")
				return
			}
			response.Abort(c, http.StatusUnauthorized, "Invalid access token")
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the claims set by JWTAuth, or nil on unprotected routes
func GetClaims(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}
