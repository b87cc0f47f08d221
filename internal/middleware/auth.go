package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	PermissionFlightsWrite = "flights:write"
	PermissionPlanesWrite  = "planes:write"
	PermissionTicketsWrite = "tickets:write"
	PermissionReportsRead  = "reports:read"
	PermissionAll          = "*"

	claimsKey = "auth_claims"
)

// Claims are issued by the identity service; this service only verifies them.
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

func (c *Claims) Allows(permission string) bool {
	return slices.Contains(c.Permissions, PermissionAll) || slices.Contains(c.Permissions, permission)
}

type Auth struct {
	secret []byte
	issuer string
	log    *slog.Logger
}

// NewAuth returns a verifier for HS256 bearer tokens. With an empty secret
// every permission check passes.
func NewAuth(secret, issuer string, log *slog.Logger) *Auth {
	return &Auth{secret: []byte(secret), issuer: issuer, log: log}
}

func (a *Auth) Enabled() bool {
	return len(a.secret) > 0
}

func (a *Auth) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// RequirePermission rejects requests without a valid bearer token carrying
// permission.
func (a *Auth) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}

		claims, ok := c.Get(claimsKey)
		if !ok {
			header := c.GetHeader("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				abort(c, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			verified, err := a.Verify(parts[1])
			if err != nil {
				a.log.Warn("token rejected", "request_id", GetRequestID(c), "error", err)
				abort(c, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			c.Set(claimsKey, verified)
			claims = verified
		}

		if !claims.(*Claims).Allows(permission) {
			a.log.Warn("permission denied",
				"request_id", GetRequestID(c),
				"subject", claims.(*Claims).Subject,
				"permission", permission)
			abort(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
