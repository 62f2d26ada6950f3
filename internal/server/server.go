package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/adapters/exporter"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/adapters/source"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/pkg/config"
)

// ChatAnalyzer is the use case that runs one analysis over an uploaded
// export.
type ChatAnalyzer interface {
	AnalyzeChat(ctx context.Context, data []byte) (*domain.Report, error)
}

// Server is the HTTP front of the analyzer.
type Server struct {
	HTTPServer  *http.Server
	cfg         *config.Config
	reportStore *ReportStore
	analyzer    ChatAnalyzer
}

// New creates a Server with all routes registered.
func New(cfg *config.Config, analyzer ChatAnalyzer, reportStore *ReportStore) (*Server, error) {
	s := &Server{
		cfg:         cfg,
		reportStore: reportStore,
		analyzer:    analyzer,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Route("/reports/{reportID}", func(r chi.Router) {
			r.Get("/", s.handleGetReport)
			r.Get("/stats", s.handleGetStats)
			r.Get("/sentiment", s.handleGetSentiment)
			r.Get("/export/csv", s.handleExportCSV)
			r.Get("/export/json", s.handleExportJSON)
		})
	})

	s.HTTPServer = &http.Server{
		Addr:    cfg.Address(),
		Handler: r,
	}
	return s, nil
}

// Router exposes the handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.HTTPServer.Handler
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.HTTPServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTPServer.Shutdown(ctx)
}

// handleAnalyze accepts a multipart .txt upload, registers a report entry
// and runs the pipeline in the background. The response carries the
// report ID to poll.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadSize()); err != nil {
		httpError(w, http.StatusBadRequest, "failed to parse upload form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpError(w, http.StatusBadRequest, "no file in upload form")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".txt") {
		httpError(w, http.StatusBadRequest, "please upload a .txt chat export")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadSize()+1))
	if err != nil {
		httpError(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadSize() {
		httpError(w, http.StatusRequestEntityTooLarge, "uploaded file is too large")
		return
	}

	reportID := uuid.NewString()
	s.reportStore.Create(reportID, s.cfg.ReportTTL())
	slog.Info("analysis requested", "report_id", reportID, "size", len(data))

	src := source.NewMemorySource(data)

	go func() {
		_ = s.reportStore.SetStatus(reportID, ReportStatusProcessing)

		taskCtx := context.Background()
		if timeout := s.cfg.TaskTimeout(); timeout > 0 {
			var cancel context.CancelFunc
			taskCtx, cancel = context.WithTimeout(taskCtx, timeout)
			defer cancel()
		}

		export, err := src.Fetch()
		if err != nil {
			_ = s.reportStore.SetError(reportID, err.Error())
			return
		}

		report, err := s.analyzer.AnalyzeChat(taskCtx, export)
		if err != nil {
			slog.Warn("analysis failed", "report_id", reportID, "error", err)
			_ = s.reportStore.SetError(reportID, err.Error())
			return
		}

		// The analyzer may hand back a cached report shared between runs
		// with identical content. Stamp the run ID on a copy so earlier
		// runs keep theirs.
		run := *report
		run.ID = reportID
		_ = s.reportStore.SetReport(reportID, &run)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"report_id": reportID})
}

// reportStatusResponse is the polling answer for a run.
type reportStatusResponse struct {
	ReportID     string         `json:"report_id"`
	Status       ReportStatus   `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Report       *domain.Report `json:"report,omitempty"`
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, reportStatusResponse{
		ReportID:     entry.ID,
		Status:       entry.Status,
		ErrorMessage: entry.ErrorMessage,
		Report:       entry.Report,
	})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupCompleted(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, entry.Report.BasicStats)
}

func (s *Server) handleGetSentiment(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupCompleted(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, entry.Report.SentimentStats)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupCompleted(w, r)
	if !ok {
		return
	}

	data, err := exporter.ReportToCSV(entry.Report)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "failed to build csv export")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=chat_analysis.csv")
	_, _ = w.Write(data)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupCompleted(w, r)
	if !ok {
		return
	}

	data, err := exporter.ReportToJSON(entry.Report)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "failed to build json export")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=chat_analysis.json")
	_, _ = w.Write(data)
}

// lookup resolves the report entry of the request, answering 404 when it
// does not exist.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*ReportEntry, bool) {
	reportID := chi.URLParam(r, "reportID")
	entry, err := s.reportStore.Get(reportID)
	if err != nil {
		httpError(w, http.StatusNotFound, fmt.Sprintf("report %s not found", reportID))
		return nil, false
	}
	return entry, true
}

// lookupCompleted additionally requires the run to be finished.
func (s *Server) lookupCompleted(w http.ResponseWriter, r *http.Request) (*ReportEntry, bool) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return nil, false
	}
	if entry.Status != ReportStatusCompleted || entry.Report == nil {
		httpError(w, http.StatusConflict, fmt.Sprintf("report is %s, no analysis data available", entry.Status))
		return nil, false
	}
	return entry, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func httpError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
