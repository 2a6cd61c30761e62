package domain

// AuditEntry is one row of the agent audit log. Phone and Status are set for
// per-message rows; discrete lifecycle events leave them empty.
type AuditEntry struct {
	UserID  string
	Phone   string
	Event   string
	Status  string
	Payload JSONMap
}
