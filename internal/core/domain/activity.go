package domain

import "time"

// ActivityEntry is one row of the append-only audit log. An entry is written
// for every confirm-and-activate action and for batch payment generation.
type ActivityEntry struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	Action         string         `json:"action"`
	EntityKind     string         `json:"entity_kind"`
	EntityID       string         `json:"entity_id"`
	Detail         map[string]any `json:"detail,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
