package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionWalletCreate  AuditAction = "WALLET_CREATE"
	AuditActionWalletUpdate  AuditAction = "WALLET_UPDATE"
	AuditActionWalletDelete  AuditAction = "WALLET_DELETE"
	AuditActionWalletRefresh AuditAction = "WALLET_REFRESH"
)

// AuditLog records a single audited wallet action.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      *uuid.UUID  `json:"actor_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
