// Package handler exposes the request API: bulk intake, the user's own
// requests and their reconciled history, and operator updates.
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
	"sourcing/pkg/platform/middleware/auth"
	request "sourcing/pkg/platform/middleware/request"
	"sourcing/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the request operations the handler needs.
type Service interface {
	ProcessBulkRequest(ctx context.Context, userID id.UserID, req models.BulkRequest) (*models.BulkRequestOutcome, error)
	GetReconciledHistory(ctx context.Context, requestID id.RequestID) ([]models.TimelineEntry, error)
	GetRequest(ctx context.Context, requestID id.RequestID) (*models.Request, error)
	ListUserRequests(ctx context.Context, userID id.UserID) ([]*models.Request, error)
	UpdateRequest(ctx context.Context, requestID id.RequestID, update models.RequestUpdate) (*models.Request, error)
	WithdrawRequest(ctx context.Context, userID id.UserID, requestID id.RequestID) (*models.Request, error)
}

type Handler struct {
	requests     Service
	logger       *slog.Logger
	jwtValidator auth.JWTValidator
	adminToken   string
}

func New(requests Service, logger *slog.Logger, jwtValidator auth.JWTValidator, adminToken string) *Handler {
	return &Handler{
		requests:     requests,
		logger:       logger,
		jwtValidator: jwtValidator,
		adminToken:   adminToken,
	}
}

// Register mounts the user routes behind bearer auth and the operator routes
// behind the admin token.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/requests/bulk", h.handleBulk)
		r.Get("/requests/mine", h.handleListMine)
		r.Get("/requests/{id}", h.handleGet)
		r.Get("/requests/{id}/history", h.handleHistory)
		r.Post("/requests/{id}/withdraw", h.handleWithdraw)
	})
	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Patch("/requests/{id}", h.handleAdminUpdate)
	})
}

func (h *Handler) handleBulk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	var body models.BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "invalid bulk request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	outcome, err := h.requests.ProcessBulkRequest(ctx, requestcontext.UserID(ctx), body)
	if err != nil {
		h.writeServiceError(ctx, w, "bulk request failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBulkResponse(outcome))
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqs, err := h.requests.ListUserRequests(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list requests", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reqs)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	req, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	timeline, err := h.requests.GetReconciledHistory(ctx, req.ID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to reconcile request history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, timeline)
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := parseRequestID(w, r)
	if !ok {
		return
	}
	req, err := h.requests.WithdrawRequest(ctx, requestcontext.UserID(ctx), requestID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to withdraw request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

// AdminUpdateRequest is the body of PATCH /requests/{id}. At least one field
// must be set. All fields are applied together or not at all.
type AdminUpdateRequest struct {
	State        *string `json:"state,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	AdminComment *string `json:"adminComment,omitempty"`
}

func (h *Handler) handleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := parseRequestID(w, r)
	if !ok {
		return
	}

	var body AdminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "invalid request update body",
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if body.State == nil && body.Priority == nil && body.AdminComment == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "state, priority or adminComment is required"))
		return
	}

	update := models.RequestUpdate{AdminComment: body.AdminComment}
	if body.State != nil {
		next, err := models.ParseRequestState(*body.State)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		update.State = &next
	}
	if body.Priority != nil {
		priority, err := models.ParsePriority(*body.Priority)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		update.Priority = &priority
	}

	updated, err := h.requests.UpdateRequest(ctx, requestID, update)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// loadOwned loads the request named in the path and rejects requests of other
// users with 403.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.Request, bool) {
	ctx := r.Context()
	requestID, ok := parseRequestID(w, r)
	if !ok {
		return nil, false
	}
	req, err := h.requests.GetRequest(ctx, requestID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load request", err)
		return nil, false
	}
	if req.UserID != requestcontext.UserID(ctx) {
		h.logger.WarnContext(ctx, "request accessed by another user",
			"request_id", request.GetRequestID(ctx),
			"data_request_id", requestID.String(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "request belongs to another user"))
		return nil, false
	}
	return req, true
}

func parseRequestID(w http.ResponseWriter, r *http.Request) (id.RequestID, bool) {
	requestID, err := id.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request id"))
		return id.RequestID{}, false
	}
	return requestID, true
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
