package domain

import (
	"strconv"
	"time"
)

// AuditAction names what happened to an entity.
type AuditAction string

const (
	AuditCreated AuditAction = "created"
	AuditUpdated AuditAction = "updated"
	AuditDeleted AuditAction = "deleted"
	AuditLogin   AuditAction = "login"
	AuditLogout  AuditAction = "logout"
)

// Entity kinds recorded in the audit trail.
const (
	EntityAdvertisement = "advertisement"
	EntityUser          = "user"
	EntityToken         = "token"
)

// AuditEvent records a successful mutation for the audit trail.
type AuditEvent struct {
	Entity     string
	EntityID   int64
	Action     AuditAction
	ActorID    int64
	OccurredAt time.Time
}

// Key identifies the audited entity; events sharing a key keep their order.
func (e AuditEvent) Key() string {
	return e.Entity + ":" + strconv.FormatInt(e.EntityID, 10)
}
