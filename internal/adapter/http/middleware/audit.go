package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful wallet writes. Routes are matched by their
// registered pattern, so it must run on the engine that owns them.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var actorID *uuid.UUID
		if v, ok := c.Get(CtxUserID); ok {
			if id, ok := v.(uuid.UUID); ok {
				actorID = &id
			}
		}

		resourceID := c.Param("id")
		if resourceID == "" {
			resourceID = c.GetString(CtxResourceID)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      actorID,
			Action:       action,
			ResourceType: "wallet",
			ResourceID:   resourceID,
			Details:      string(details),
			IPAddress:    c.ClientIP(),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func mapRouteToAction(route, method string) domain.AuditAction {
	switch {
	case route == "/api/v1/wallets" && method == http.MethodPost:
		return domain.AuditActionWalletCreate
	case route == "/api/v1/wallets/:id" && method == http.MethodPatch:
		return domain.AuditActionWalletUpdate
	case route == "/api/v1/wallets/:id" && method == http.MethodDelete:
		return domain.AuditActionWalletDelete
	case route == "/api/v1/wallets/:id/refresh" && method == http.MethodPost:
		return domain.AuditActionWalletRefresh
	}
	return ""
}
