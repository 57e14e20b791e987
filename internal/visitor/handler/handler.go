// Package handler exposes the visitor tracker over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatehouse/internal/visitor/models"
	"gatehouse/internal/visitor/service"
	"gatehouse/internal/visitor/views"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

// Service defines the visitor operations the handler depends on.
type Service interface {
	Register(ctx context.Context, params service.RegisterParams) (*models.VisitorRecord, error)
	Get(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error)
	SetStatus(ctx context.Context, visitorID id.VisitorID, status models.ApprovalStatus) (*models.VisitorRecord, error)

	CheckIn(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error)
	CheckOut(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error)
	ResetTimeRecords(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error)

	RecordViolation(ctx context.Context, visitorID id.VisitorID, violationType, details string) (*models.VisitorRecord, error)
	ClearViolation(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error)
	Ban(ctx context.Context, visitorID id.VisitorID, duration, reason string) (*models.VisitorRecord, error)
	ClearBan(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error)

	ListAll(ctx context.Context, f views.Filter) ([]*models.VisitorRecord, error)
	ListViolators(ctx context.Context) ([]*models.VisitorRecord, error)
	ListBanned(ctx context.Context) ([]*models.VisitorRecord, error)
	SummaryStats(ctx context.Context, f views.Filter) (views.Summary, error)
}

// Handler handles visitor tracker endpoints.
type Handler struct {
	logger   *slog.Logger
	visitors Service
}

// New creates a visitor Handler.
func New(visitors Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, visitors: visitors}
}

// Register registers the visitor routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/visitors", func(r chi.Router) {
		r.Post("/", h.handleRegister)
		r.Route("/{visitorID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Post("/status", h.handleSetStatus)
			r.Post("/check-in", h.handleCheckIn)
			r.Post("/check-out", h.handleCheckOut)
			r.Post("/reset", h.handleReset)
			r.Post("/violations", h.handleRecordViolation)
			r.Delete("/violations", h.handleClearViolation)
			r.Post("/ban", h.handleBan)
			r.Delete("/ban", h.handleClearBan)
		})
	})
	r.Route("/visits", func(r chi.Router) {
		r.Get("/", h.handleListVisits)
		r.Get("/violators", h.handleListViolators)
		r.Get("/banned", h.handleListBanned)
		r.Get("/summary", h.handleSummary)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterVisitorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	visitedID, err := id.ParseDetaineeID(req.VisitedPersonID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.visitors.Register(ctx, service.RegisterParams{
		Profile: models.Profile{
			Name:      req.Name,
			Birthdate: req.Birthdate,
			Sex:       req.Sex,
			Address:   req.Address,
			Contact:   req.Contact,
		},
		Relationship:      req.Relationship,
		VisitedPersonID:   visitedID,
		VisitedPersonName: req.VisitedPersonName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register visitor failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, NewVisitorResponse(record))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	h.withVisitor(w, r, "get visitor", http.StatusOK, h.visitors.Get)
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.visitors.SetStatus(ctx, visitorID, models.ApprovalStatus(req.Status))
	if err != nil {
		h.logger.WarnContext(ctx, "set visitor status failed",
			"request_id", requestID,
			"visitor_id", visitorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewVisitorResponse(record))
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	h.withVisitor(w, r, "check in", http.StatusOK, h.visitors.CheckIn)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	h.withVisitor(w, r, "check out", http.StatusOK, h.visitors.CheckOut)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.withVisitor(w, r, "reset time records", http.StatusOK, h.visitors.ResetTimeRecords)
}

func (h *Handler) handleRecordViolation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[RecordViolationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.visitors.RecordViolation(ctx, visitorID, req.Type, req.Details)
	if err != nil {
		h.logger.WarnContext(ctx, "record violation failed",
			"request_id", requestID,
			"visitor_id", visitorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewVisitorResponse(record))
}

func (h *Handler) handleClearViolation(w http.ResponseWriter, r *http.Request) {
	h.withVisitor(w, r, "clear violation", http.StatusOK, h.visitors.ClearViolation)
}

func (h *Handler) handleBan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[BanRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.visitors.Ban(ctx, visitorID, req.Duration, req.Reason)
	if err != nil {
		h.logger.WarnContext(ctx, "ban visitor failed",
			"request_id", requestID,
			"visitor_id", visitorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewVisitorResponse(record))
}

func (h *Handler) handleClearBan(w http.ResponseWriter, r *http.Request) {
	h.withVisitor(w, r, "clear ban", http.StatusOK, h.visitors.ClearBan)
}

// withVisitor factors the id-parameterized operations that take no body.
func (h *Handler) withVisitor(w http.ResponseWriter, r *http.Request, op string, status int, fn func(context.Context, id.VisitorID) (*models.VisitorRecord, error)) {
	ctx := r.Context()

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := fn(ctx, visitorID)
	if err != nil {
		h.logger.WarnContext(ctx, op+" failed",
			"request_id", requestcontext.RequestID(ctx),
			"visitor_id", visitorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, status, NewVisitorResponse(record))
}

func (h *Handler) handleListVisits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := parseFilter(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	records, err := h.visitors.ListAll(ctx, f)
	if err != nil {
		h.logger.ErrorContext(ctx, "list visits failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewListResponse(records))
}

func (h *Handler) handleListViolators(w http.ResponseWriter, r *http.Request) {
	h.handleClassView(w, r, "list violators", h.visitors.ListViolators)
}

func (h *Handler) handleListBanned(w http.ResponseWriter, r *http.Request) {
	h.handleClassView(w, r, "list banned", h.visitors.ListBanned)
}

func (h *Handler) handleClassView(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context) ([]*models.VisitorRecord, error)) {
	ctx := r.Context()
	records, err := fn(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, op+" failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewListResponse(records))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := parseFilter(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summary, err := h.visitors.SummaryStats(ctx, f)
	if err != nil {
		h.logger.ErrorContext(ctx, "summarize visits failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}
