package secondary

import "context"

// AuditEntity names the collection an audit entry refers to. The values
// match the entity_type CHECK constraint of the activity_log table.
type AuditEntity string

const (
	AuditUser   AuditEntity = "user"
	AuditChore  AuditEntity = "chore"
	AuditMemory AuditEntity = "memory"
)

// LogWriter records who changed what in the lifeassist store. The actor is
// read from the context (a user's public key, or the sweep). Repositories
// treat audit failures as non-fatal.
type LogWriter interface {
	LogCreate(ctx context.Context, entity AuditEntity, id string) error

	// LogUpdate records one field change; secrets such as push tokens are
	// passed as a placeholder, never as the value itself.
	LogUpdate(ctx context.Context, entity AuditEntity, id, field, oldValue, newValue string) error

	LogDelete(ctx context.Context, entity AuditEntity, id string) error
}
