// Package backendtest provides an in-process fake of the translation
// backend for client and usecase tests. Job lifecycle transitions are
// driven explicitly by the test via Advance, Complete and Fail.
package backendtest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type jobState struct {
	status      string
	progress    int
	message     string
	statusCalls int
}

type artifactKey struct {
	jobID string
	kind  string
}

type usageRecord struct {
	Timestamp string  `json:"timestamp"`
	Operation string  `json:"operation"`
	Pages     int     `json:"pages"`
	Cost      float64 `json:"cost"`
}

// Server is a scriptable fake backend.
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	jobs      map[string]*jobState
	artifacts map[artifactKey][]byte

	username string
	password string

	usage    float64
	budget   float64
	requests []usageRecord
}

// New starts a fake backend with default admin credentials
// admin/admin123 and a 100.0 budget. It is shut down via t.Cleanup.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		jobs:      make(map[string]*jobState),
		artifacts: make(map[artifactKey][]byte),
		username:  "admin",
		password:  "admin123",
		budget:    100,
	}

	r := chi.NewRouter()
	r.Post("/api/upload", s.handleUpload)
	r.Get("/api/status/{jobID}", s.handleStatus)
	r.Get("/api/download/{jobID}", s.handleArtifact("translated"))
	r.Get("/api/original/{jobID}", s.handleArtifact("original"))
	r.Get("/api/preview/{kind}/{jobID}", s.handlePreview)
	r.Get("/admin/dashboard", s.requireAuth(s.handleDashboard))
	r.Post("/admin/reset-usage", s.requireAuth(s.handleResetUsage))
	r.Post("/admin/change-password", s.requireAuth(s.handleChangePassword))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the base URL of the fake backend.
func (s *Server) URL() string { return s.srv.URL }

// Credential returns the encoded header value for the current admin secret.
func (s *Server) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return base64.StdEncoding.EncodeToString([]byte(s.username + ":" + s.password))
}

// Advance moves a job to processing with the given progress and message.
func (s *Server) Advance(jobID string, progress int, message string) {
	s.setJob(jobID, "processing", progress, message)
}

// Complete marks a job completed.
func (s *Server) Complete(jobID string) {
	s.setJob(jobID, "completed", 100, "Translation complete")
}

// Fail marks a job failed with the given message.
func (s *Server) Fail(jobID, message string) {
	s.setJob(jobID, "failed", 0, message)
}

func (s *Server) setJob(jobID, status string, progress int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[jobID]
	if !ok {
		j = &jobState{}
		s.jobs[jobID] = j
	}
	j.status = status
	j.progress = progress
	j.message = message
}

// StatusCalls reports how many times a job's status was polled.
func (s *Server) StatusCalls(jobID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[jobID]; ok {
		return j.statusCalls
	}
	return 0
}

// SetArtifact stores artifact bytes for a job. Empty data is served as a
// 200 with a zero-length body, mirroring a backend that lost the file.
func (s *Server) SetArtifact(jobID, kind string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[artifactKey{jobID: jobID, kind: kind}] = data
}

// AddUsage appends a ledger entry.
func (s *Server) AddUsage(operation string, pages int, cost float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage += cost
	s.requests = append(s.requests, usageRecord{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Operation: operation,
		Pages:     pages,
		Cost:      cost,
	})
}

// --- Handlers ---

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "file is required")
		return
	}
	f.Close()
	for _, field := range []string{"language", "direction", "mode"} {
		if r.FormValue(field) == "" {
			writeDetail(w, http.StatusUnprocessableEntity, field+" is required")
			return
		}
	}

	jobID := uuid.NewString()
	s.mu.Lock()
	s.jobs[jobID] = &jobState{status: "queued", message: "Job accepted"}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"job_id":  jobID,
		"message": "File uploaded, translation started",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	s.mu.Lock()
	j, ok := s.jobs[jobID]
	if ok {
		j.statusCalls++
	}
	var snapshot jobState
	if ok {
		snapshot = *j
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "Job not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   snapshot.status,
		"progress": snapshot.progress,
		"message":  snapshot.message,
	})
}

func (s *Server) handleArtifact(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveArtifact(w, chi.URLParam(r, "jobID"), kind, "attachment")
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind != "translated" && kind != "original" {
		writeDetail(w, http.StatusNotFound, "unknown preview kind")
		return
	}
	s.serveArtifact(w, chi.URLParam(r, "jobID"), kind, "inline")
}

func (s *Server) serveArtifact(w http.ResponseWriter, jobID, kind, disposition string) {
	s.mu.Lock()
	data, ok := s.artifacts[artifactKey{jobID: jobID, kind: kind}]
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "Job not found")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("%s; filename=%s_%s.pdf", disposition, kind, jobID))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get("X-Admin-Auth")
		if got == "" || got != s.Credential() {
			writeDetail(w, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.requests
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	pct := 0.0
	if s.budget > 0 {
		pct = s.usage / s.budget * 100
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current_usage":    s.usage,
		"budget_limit":     s.budget,
		"remaining_budget": s.budget - s.usage,
		"percentage_used":  pct,
		"recent_requests":  recent,
		"total_requests":   len(s.requests),
	})
}

func (s *Server) handleResetUsage(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.usage = 0
	s.requests = nil
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Usage reset",
	})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.CurrentPassword != s.password {
		writeDetail(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}
	s.password = req.NewPassword
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password changed",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
