package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/consite/inventory-service/internal/audit"
	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/metrics"
)

// RequireRoles restricts a route to the given roles. Denials are audited
// as permission violations.
func RequireRoles(recorder audit.Recorder, roles ...model.UserRole) gin.HandlerFunc {
	allowed := make(map[model.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			abortWithError(c, errs.AuthenticationRequired("authentication required"))
			return
		}
		if _, ok := allowed[actor.Role]; !ok {
			entry := audit.ViolationEntry(actor, model.AuditPermissionViolation,
				c.Request.Method+" "+c.FullPath(),
				"Role "+string(actor.Role)+" is not permitted on this route")
			entry.IPAddress = c.ClientIP()
			entry.UserAgent = c.Request.UserAgent()
			recorder.Record(c.Request.Context(), entry)
			metrics.ObserveAccessDenial(string(actor.Role))

			abortDenied(c, "your role does not permit this operation")
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin restricts a route to super admins.
func RequireSuperAdmin(recorder audit.Recorder) gin.HandlerFunc {
	return RequireRoles(recorder, model.RoleSuperAdmin)
}
