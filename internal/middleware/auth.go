package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/applymate/applymate-api/internal/identity"
	"github.com/gin-gonic/gin"
)

const (
	identityKey = "applymate.identity"
	bearerKey   = "applymate.bearer"
)

// RequireAuth is the AuthGate: every protected route resolves the bearer
// credential to an identity before any component runs. Verification only —
// no identity state is created or touched here.
func RequireAuth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "missing or malformed bearer credential",
			})
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, identity.ErrUnauthenticated) {
				// Store-side failure, not a bad credential.
				status = http.StatusBadGateway
			}
			c.AbortWithStatusJSON(status, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}

		c.Set(identityKey, ident)
		c.Set(bearerKey, token)
		c.Next()
	}
}

// IdentityFrom returns the identity RequireAuth resolved for this request.
func IdentityFrom(c *gin.Context) *identity.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(*identity.Identity); ok {
			return ident
		}
	}
	return nil
}

// BearerFrom returns the raw bearer token, needed when a handler has to make
// a follow-up call to the identity store on the caller's behalf.
func BearerFrom(c *gin.Context) string {
	if v, ok := c.Get(bearerKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
