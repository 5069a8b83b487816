// Package api provides HTTP upload capabilities for the subscan
// extractor. This is a capability module that can be enabled via the CLI
// or used programmatically.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/subtrackr/subscan/extractor"
	"github.com/subtrackr/subscan/extractor/common"
	"github.com/subtrackr/subscan/extractor/pdfstmt"
	"github.com/subtrackr/subscan/extractor/rules"
)

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
	}
}

// Server represents the HTTP API server
type Server struct {
	config Config
	rules  rules.ExtractionRules
	mux    *http.ServeMux
}

// New creates a new API server with the given configuration and rule set
func New(cfg Config, r rules.ExtractionRules) *Server {
	s := &Server{
		config: cfg,
		rules:  r,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/extract", s.handleExtract)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server
// This allows the server to be used with custom http.Server configurations
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type extractResponse struct {
	Filename   string             `json:"filename"`
	Candidates []common.Candidate `json:"candidates"`
}

// handleExtract accepts a multipart statement upload and returns the
// deduplicated candidate list.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	log.Printf("%sReceived request from %s", s.config.LogPrefix, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart form with 32MB max memory
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("%sError parsing multipart form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		log.Printf("%sError getting file from form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Read file into memory so the PDF path has a seekable reader
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Printf("%sError reading file bytes: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not read file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	fileReader := bytes.NewReader(fileBytes)

	if s.rawLinesRequested(r) {
		s.handleRawLines(w, fileReader, handler.Filename)
		return
	}

	candidates, err := extractor.FromReader(fileReader, handler.Filename, s.rules)
	switch {
	case errors.Is(err, extractor.ErrUnsupportedFile):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	case errors.Is(err, extractor.ErrNoCandidates):
		// "nothing found" is a valid outcome, not a failure
		candidates = []common.Candidate{}
	case err != nil:
		log.Printf("%sExtraction failed for %s: %v", s.config.LogPrefix, handler.Filename, err)
		http.Error(w, "Could not extract candidates: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(extractResponse{
		Filename:   handler.Filename,
		Candidates: candidates,
	})
}

func (s *Server) rawLinesRequested(r *http.Request) bool {
	return r.FormValue("raw_lines") == "true" || r.URL.Query().Get("raw_lines") == "true"
}

// handleRawLines returns the reconstructed statement lines for a PDF
// upload. Debug surface for tuning rule sets against a new bank layout.
func (s *Server) handleRawLines(w http.ResponseWriter, reader io.ReadSeeker, filename string) {
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		http.Error(w, "raw_lines is only supported for PDF uploads", http.StatusBadRequest)
		return
	}

	fragments, err := pdfstmt.LoadFragments(reader)
	if err != nil {
		http.Error(w, "Could not extract text from file: "+err.Error(), http.StatusBadRequest)
		return
	}
	lines := pdfstmt.Reconstruct(fragments, s.rules.LineTolerance)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"filename": filename,
		"lines":    lines,
	})
}
