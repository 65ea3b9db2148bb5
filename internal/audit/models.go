// Package audit records who changed which registered name and when. Events
// are appended to a store for the read API and optionally streamed to Kafka
// for downstream consumers.
package audit

import (
	"time"

	"github.com/Kamduis/name-combo/pkg/domain"
)

// Action classifies an audit event.
type Action string

const (
	ActionPersonRegistered Action = "person.registered"
	ActionPersonRenamed    Action = "person.renamed"
	ActionPersonDeleted    Action = "person.deleted"
)

// Event is one immutable audit record.
type Event struct {
	Action    Action          `json:"action"`
	PersonID  domain.PersonID `json:"person_id"`
	Actor     string          `json:"actor,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
