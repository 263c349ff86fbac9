// Package server exposes the statements over a read-only JSON HTTP API.
package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerview/internal/journal"
	"github.com/cleared-dev/ledgerview/internal/reports"
)

// Source supplies the snapshot a request is answered from. It is called
// once per request so edits to the ledger files show up without a restart.
type Source func() (reports.Inputs, error)

// Handler holds the data source and the logger.
type Handler struct {
	source Source
	logger *zap.Logger
}

// Option configures NewHandler.
type Option func(*options)

type options struct {
	allowedOrigins []string
}

// WithAllowedOrigins enables CORS for browser dashboards served from the
// given origins. "*" allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(o *options) { o.allowedOrigins = origins }
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(source Source, logger *zap.Logger, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	h := &Handler{source: source, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	if len(o.allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: o.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/api/health", h.health)
	r.Get("/api/reports", h.listReports)
	r.Get("/api/reports/{kind}", h.report)
	r.Get("/api/reports/{kind}/schema", h.schema)
	r.Get("/api/validate", h.validate)

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// listReports handles GET /api/reports.
func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Reports []reports.Kind `json:"reports"`
	}
	writeJSON(w, response{Reports: reports.Kinds})
}

// report handles GET /api/reports/{kind}.
func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	kind, err := reports.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err.Error(), "UNKNOWN_REPORT", http.StatusNotFound)
		return
	}
	req, err := paramsFromQuery(r.URL.Query()).Request()
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	in, err := h.source()
	if err != nil {
		h.logger.Error("loading dataset", zap.Error(err))
		writeError(w, r, "dataset unavailable", "INTERNAL", http.StatusInternalServerError)
		return
	}

	res, err := reports.NewEngine(in, h.logger).Build(kind, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, reports.ErrUnknownKind) {
			status = http.StatusNotFound
		}
		writeError(w, r, err.Error(), "INTERNAL", status)
		return
	}
	writeJSON(w, res)
}

// schema handles GET /api/reports/{kind}/schema.
func (h *Handler) schema(w http.ResponseWriter, r *http.Request) {
	kind, err := reports.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err.Error(), "UNKNOWN_REPORT", http.StatusNotFound)
		return
	}
	s, err := reports.Schema(kind)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s)
}

type validationError struct {
	Kind        journal.ErrorKind `json:"kind"`
	EntryID     string            `json:"entryId,omitempty"`
	AccountID   string            `json:"accountId,omitempty"`
	Description string            `json:"description"`
}

// validate handles GET /api/validate.
func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	in, err := h.source()
	if err != nil {
		h.logger.Error("loading dataset", zap.Error(err))
		writeError(w, r, "dataset unavailable", "INTERNAL", http.StatusInternalServerError)
		return
	}

	rep := journal.Validate(in.Entries, in.Accounts)
	rep.Errors = append(journal.ValidateChart(in.Accounts), rep.Errors...)
	type response struct {
		Entries    int               `json:"entries"`
		Unbalanced []string          `json:"unbalanced"`
		Errors     []validationError `json:"errors"`
	}
	resp := response{Entries: len(in.Entries), Unbalanced: []string{}, Errors: []validationError{}}
	resp.Unbalanced = append(resp.Unbalanced, rep.Unbalanced...)
	for _, ve := range rep.Errors {
		resp.Errors = append(resp.Errors, validationError{
			Kind:        ve.Kind,
			EntryID:     ve.EntryID,
			AccountID:   ve.AccountID,
			Description: ve.Description,
		})
	}
	writeJSON(w, resp)
}

// paramsFromQuery maps query parameters onto report parameters.
// showZero accepts anything strconv.ParseBool does; other values are false.
func paramsFromQuery(q url.Values) reports.Params {
	showZero, _ := strconv.ParseBool(strings.TrimSpace(q.Get("showZero")))
	return reports.Params{
		From:     q.Get("from"),
		To:       q.Get("to"),
		Source:   q.Get("source"),
		Account:  q.Get("account"),
		Year:     q.Get("year"),
		Level:    q.Get("level"),
		AsOf:     q.Get("asOf"),
		ShowZero: showZero,
		Opening:  q.Get("opening"),
	}
}
