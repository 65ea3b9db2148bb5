package handler

import (
	"time"

	"github.com/Kamduis/name-combo/internal/audit"
	"github.com/Kamduis/name-combo/internal/person/models"
)

// PersonResponse is the HTTP representation of a registered person.
type PersonResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title,omitempty"`
	GivenNames []string  `json:"given_names"`
	FamilyName string    `json:"family_name,omitempty"`
	Suffix     string    `json:"suffix,omitempty"`
	Gender     string    `json:"gender"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromPerson converts a Person aggregate to its HTTP representation.
func FromPerson(p *models.Person) *PersonResponse {
	return &PersonResponse{
		ID:         p.ID.String(),
		Title:      p.Name.Title(),
		GivenNames: p.Name.GivenNames(),
		FamilyName: p.Name.FamilyName(),
		Suffix:     p.Name.Suffix(),
		Gender:     p.Gender.String(),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ListPersonsResponse is the HTTP response for GET /persons.
type ListPersonsResponse struct {
	Persons []*PersonResponse `json:"persons"`
	Total   int               `json:"total"`
}

// FromPersons converts a result list to its HTTP representation.
func FromPersons(persons []*models.Person) *ListPersonsResponse {
	out := make([]*PersonResponse, 0, len(persons))
	for _, p := range persons {
		out = append(out, FromPerson(p))
	}
	return &ListPersonsResponse{Persons: out, Total: len(out)}
}

// FormatResponse is the HTTP response for GET /persons/{id}/format.
type FormatResponse struct {
	PersonID   string `json:"person_id"`
	Convention string `json:"convention"`
	Case       string `json:"case"`
	Locale     string `json:"locale"`
	Formatted  string `json:"formatted"`
}

// PoliteResponse is the HTTP response for GET /persons/{id}/polite.
type PoliteResponse struct {
	PersonID string `json:"person_id"`
	Locale   string `json:"locale"`
	Polite   string `json:"polite"`
}

// AuditEventResponse is one entry of the audit trail response.
type AuditEventResponse struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditTrailResponse is the HTTP response for GET /persons/{id}/audit.
type AuditTrailResponse struct {
	PersonID string                `json:"person_id"`
	Events   []*AuditEventResponse `json:"events"`
}

// FromAuditEvents converts audit events to their HTTP representation.
func FromAuditEvents(personID string, events []audit.Event) *AuditTrailResponse {
	out := make([]*AuditEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, &AuditEventResponse{
			Action:    string(e.Action),
			Actor:     e.Actor,
			RequestID: e.RequestID,
			Timestamp: e.Timestamp,
		})
	}
	return &AuditTrailResponse{PersonID: personID, Events: out}
}

// StatsResponse is the HTTP response for GET /admin/stats.
type StatsResponse struct {
	Persons int `json:"persons"`
}
