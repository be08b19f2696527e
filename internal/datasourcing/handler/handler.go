// Package handler exposes the operator API for data sourcings.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/platform/httputil"
	"sourcing/pkg/platform/middleware/admin"
	request "sourcing/pkg/platform/middleware/request"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the data sourcing operations the handler needs.
type Service interface {
	Get(ctx context.Context, sourcingID id.DataSourcingID) (*models.DataSourcing, error)
	History(ctx context.Context, sourcingID id.DataSourcingID) ([]models.DataSourcingStateHistoryEntry, error)
	Transition(ctx context.Context, sourcingID id.DataSourcingID, next models.DataSourcingState) (*models.DataSourcing, error)
}

type Handler struct {
	sourcing   Service
	logger     *slog.Logger
	adminToken string
}

func New(sourcing Service, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{
		sourcing:   sourcing,
		logger:     logger,
		adminToken: adminToken,
	}
}

// Register mounts the operator routes behind the admin token.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Get("/data-sourcing/{id}", h.handleGet)
		r.Get("/data-sourcing/{id}/history", h.handleHistory)
		r.Patch("/data-sourcing/{id}", h.handleTransition)
	})
}

// TransitionRequest is the body of PATCH /data-sourcing/{id}.
type TransitionRequest struct {
	State string `json:"state"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sourcingID, ok := h.parseID(w, r)
	if !ok {
		return
	}
	ds, err := h.sourcing.Get(ctx, sourcingID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load data sourcing", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ds)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sourcingID, ok := h.parseID(w, r)
	if !ok {
		return
	}
	history, err := h.sourcing.History(ctx, sourcingID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load data sourcing history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, history)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sourcingID, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var body TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "invalid data sourcing transition body",
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	next, err := models.ParseDataSourcingState(body.State)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ds, err := h.sourcing.Transition(ctx, sourcingID, next)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to transition data sourcing", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ds)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (id.DataSourcingID, bool) {
	sourcingID, err := id.ParseDataSourcingID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid data sourcing id"))
		return id.DataSourcingID{}, false
	}
	return sourcingID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if httputil.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg,
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
