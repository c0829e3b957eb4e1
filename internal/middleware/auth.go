package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consite/inventory-service/internal/auth"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/user"
)

// Authenticate resolves the bearer token into an Actor and installs it on
// the request context. The user row is re-read on every request so that
// deactivated accounts (engineers of finished sites) lose access
// immediately, not at token expiry.
func Authenticate(tm *auth.TokenManager, users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.ExtractToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, errs.AuthenticationRequired("missing or malformed authorization header"))
			return
		}

		claims, err := tm.ValidateToken(raw)
		if err != nil {
			abortWithError(c, errs.AuthenticationRequired("invalid or expired token"))
			return
		}

		u, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortWithError(c, errs.Internal("failed to resolve caller", err))
			return
		}
		if u == nil || !u.IsActive {
			abortWithError(c, errs.AuthenticationRequired("account is not active"))
			return
		}

		actor := auth.Actor{
			ID:         u.ID,
			Email:      u.Email,
			Role:       u.Role,
			LocationID: u.LocationID,
		}
		c.Request = c.Request.WithContext(auth.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// ActorFrom pulls the authenticated caller out of a gin request. Routes
// behind Authenticate always have one.
func ActorFrom(c *gin.Context) (auth.Actor, bool) {
	return auth.FromContext(c.Request.Context())
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errs.Status(err), gin.H{
		"code":    errs.Code(err),
		"message": err.Error(),
	})
}

// abortDenied is the uniform 403 payload for scope and role failures.
func abortDenied(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"code":    "AUTHORIZATION_DENIED",
		"message": message,
	})
}
