// Package handler exposes the person registry over HTTP. It delegates to the
// service layer and keeps transport concerns (decoding, auth, error
// envelopes) out of the domain.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Kamduis/name-combo/internal/audit"
	"github.com/Kamduis/name-combo/internal/person/models"
	"github.com/Kamduis/name-combo/internal/platform/middleware"
	"github.com/Kamduis/name-combo/pkg/domain"
	dErrors "github.com/Kamduis/name-combo/pkg/domain-errors"
	"github.com/Kamduis/name-combo/pkg/person"
	"github.com/Kamduis/name-combo/pkg/platform/httputil"
)

// Service defines the interface for person registry operations.
type Service interface {
	RegisterPerson(ctx context.Context, name person.Name, gender person.Gender) (*models.Person, error)
	GetPerson(ctx context.Context, id domain.PersonID) (*models.Person, error)
	RenamePerson(ctx context.Context, id domain.PersonID, name person.Name) (*models.Person, error)
	DeletePerson(ctx context.Context, id domain.PersonID) error
	FormatPerson(ctx context.Context, id domain.PersonID, c person.Convention, gc person.GrammaticalCase, locale person.Locale) (string, error)
	PoliteAddress(ctx context.Context, id domain.PersonID, locale person.Locale) (string, error)
	ListByFamilyName(ctx context.Context, familyName string) ([]*models.Person, error)
	CountPersons(ctx context.Context) (int, error)
}

// AuditLog reads back the audit trail for a person.
type AuditLog interface {
	List(ctx context.Context, personID domain.PersonID) ([]audit.Event, error)
}

// Handler wires person registry endpoints to the person service.
type Handler struct {
	service        Service
	auditLog       AuditLog
	logger         *slog.Logger
	jwtValidator   middleware.JWTValidator
	adminTokenHash string
}

// New constructs a person handler with its dependencies.
func New(
	service Service,
	auditLog AuditLog,
	logger *slog.Logger,
	jwtValidator middleware.JWTValidator,
	adminTokenHash string) *Handler {
	return &Handler{
		service:        service,
		auditLog:       auditLog,
		logger:         logger,
		jwtValidator:   jwtValidator,
		adminTokenHash: adminTokenHash,
	}
}

// Register mounts person registry endpoints on the router. Reads are public;
// mutations require a bearer token and deletion additionally requires the
// admin token.
func (h *Handler) Register(r chi.Router) {
	r.Get("/persons", h.handleList)
	r.Get("/persons/{id}", h.handleGet)
	r.Get("/persons/{id}/format", h.handleFormat)
	r.Get("/persons/{id}/polite", h.handlePolite)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/persons", h.handleRegister)
		r.Put("/persons/{id}/name", h.handleRename)
		r.Get("/persons/{id}/audit", h.handleAuditTrail)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Use(middleware.RequireAdminToken(h.adminTokenHash, h.logger))
		r.Delete("/persons/{id}", h.handleDelete)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(h.adminTokenHash, h.logger))
		r.Get("/admin/stats", h.handleStats)
	})
}

func (h *Handler) personID(w http.ResponseWriter, r *http.Request) (domain.PersonID, bool) {
	id, err := domain.ParsePersonID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.PersonID{}, false
	}
	return id, true
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	var req RegisterPersonRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid register request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.RegisterPerson(ctx, req.ParsedName(), req.ParsedGender())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to register person",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "person registered",
		"request_id", requestID,
		"person_id", p.ID.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromPerson(p))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.personID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetPerson(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPerson(p))
}

func (h *Handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.personID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	convention, err := person.ParseConvention(query.Get("convention"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
		return
	}
	gc, err := person.ParseGrammaticalCase(query.Get("case"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
		return
	}
	locale, err := person.ParseLocale(query.Get("locale"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
		return
	}

	formatted, err := h.service.FormatPerson(ctx, id, convention, gc, locale)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &FormatResponse{
		PersonID:   id.String(),
		Convention: convention.String(),
		Case:       gc.String(),
		Locale:     locale.String(),
		Formatted:  formatted,
	})
}

func (h *Handler) handlePolite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.personID(w, r)
	if !ok {
		return
	}

	locale, err := person.ParseLocale(r.URL.Query().Get("locale"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
		return
	}

	polite, err := h.service.PoliteAddress(ctx, id, locale)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &PoliteResponse{
		PersonID: id.String(),
		Locale:   locale.String(),
		Polite:   polite,
	})
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, ok := h.personID(w, r)
	if !ok {
		return
	}

	var req RenamePersonRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid rename request",
			"request_id", requestID,
			"person_id", id.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.RenamePerson(ctx, id, req.ParsedName())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to rename person",
			"request_id", requestID,
			"person_id", id.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "person renamed",
		"request_id", requestID,
		"person_id", id.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromPerson(p))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, ok := h.personID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePerson(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete person",
			"request_id", requestID,
			"person_id", id.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "person deleted",
		"request_id", requestID,
		"person_id", id.String(),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	persons, err := h.service.ListByFamilyName(ctx, r.URL.Query().Get("family_name"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPersons(persons))
}

func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.personID(w, r)
	if !ok {
		return
	}

	// Audit trail only exists for registered persons.
	if _, err := h.service.GetPerson(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.auditLog.List(ctx, id)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load audit trail"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAuditEvents(id.String(), events))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.service.CountPersons(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &StatsResponse{Persons: count})
}
