package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// schoolScopedCapabilities need the caller to be linked to a school.
var schoolScopedCapabilities = map[domain.Capability]bool{
	domain.CapViewOwnSchool:       true,
	domain.CapManageStudents:      true,
	domain.CapManageFeeStructures: true,
	domain.CapManageInvoices:      true,
	domain.CapManageChildren:      true,
	domain.CapViewChildInvoices:   true,
	domain.CapPayInvoices:         true,
}

// RequireCapability aborts with 403 unless the authenticated role holds capability. It must run
// after AuthMiddleware.
func RequireCapability(capability domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		if !identity.Role.Can(capability) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Capability denied", slog.String("capability", string(capability)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}

		if schoolScopedCapabilities[capability] && !identity.HasSchool() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": schoolLinkMessage(identity.Role)})
			return
		}

		c.Next()
	}
}

func schoolLinkMessage(role domain.Role) string {
	if role == domain.RoleParent {
		return "Parent must be linked to a school"
	}
	return "School admin must be linked to a school"
}
