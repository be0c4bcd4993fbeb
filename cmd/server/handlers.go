package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/matching"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/pipeline"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service royalty.Service
	config  *ServerConfig
	log     royalty.Logger
}

// NewServer creates a new server instance
func NewServer(service royalty.Service, config *ServerConfig, log royalty.Logger) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     log,
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// respondServiceError maps service errors onto HTTP statuses
func (s *Server) respondServiceError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, royalty.ErrWorkNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, royalty.ErrInvalidWork):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Errorf("Failed to %s: %v", action, err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s", action))
	}
}

// decodeJSON reads a size-limited JSON body into v, rejecting unknown fields
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
		return false
	}
	return true
}

// workID reads and validates the {id} path parameter
func (s *Server) workID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !utils.IsUUID(id) {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid work ID %q", id))
		return "", false
	}
	return id, true
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.CountWorks()
	if err != nil {
		s.log.Errorf("Health check failed: %v", err)
		s.respondError(w, http.StatusServiceUnavailable, "Catalog unavailable")
		return
	}
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Time:      time.Now().Format(time.RFC3339),
		WorkCount: n,
	})
}

// handleListWorks handles GET /api/works
func (s *Server) handleListWorks(w http.ResponseWriter, r *http.Request) {
	works, err := s.service.ListWorks()
	if err != nil {
		s.respondServiceError(w, "list works", err)
		return
	}
	if works == nil {
		works = []models.CatalogWork{}
	}
	s.respondJSON(w, http.StatusOK, ListWorksResponse{Works: works, Count: len(works)})
}

// handleAddWork handles POST /api/works
func (s *Server) handleAddWork(w http.ResponseWriter, r *http.Request) {
	var req AddWorkRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.service.AddWork(req.work())
	if err != nil {
		s.respondServiceError(w, "register work", err)
		return
	}
	work, err := s.service.GetWork(id)
	if err != nil {
		s.respondServiceError(w, "load registered work", err)
		return
	}

	s.respondJSON(w, http.StatusCreated, AddWorkResponse{
		Message: "Work registered successfully",
		ID:      id,
		Work:    *work,
	})
}

// handleGetWork handles GET /api/works/{id}
func (s *Server) handleGetWork(w http.ResponseWriter, r *http.Request) {
	id, ok := s.workID(w, r)
	if !ok {
		return
	}
	work, err := s.service.GetWork(id)
	if err != nil {
		s.respondServiceError(w, "get work", err)
		return
	}
	s.respondJSON(w, http.StatusOK, work)
}

// handleDeleteWork handles DELETE /api/works/{id}
func (s *Server) handleDeleteWork(w http.ResponseWriter, r *http.Request) {
	id, ok := s.workID(w, r)
	if !ok {
		return
	}
	if err := s.service.DeleteWork(id); err != nil {
		s.respondServiceError(w, "delete work", err)
		return
	}
	s.respondJSON(w, http.StatusOK, DeleteWorkResponse{
		Message: "Work deleted successfully",
		ID:      id,
	})
}

// handleGetSongMeta handles GET /api/works/{id}/meta
func (s *Server) handleGetSongMeta(w http.ResponseWriter, r *http.Request) {
	id, ok := s.workID(w, r)
	if !ok {
		return
	}
	meta, err := s.service.GetSongMeta(id)
	if err != nil {
		s.respondServiceError(w, "get song metadata", err)
		return
	}
	s.respondJSON(w, http.StatusOK, meta)
}

// handlePutSongMeta handles PUT /api/works/{id}/meta
func (s *Server) handlePutSongMeta(w http.ResponseWriter, r *http.Request) {
	id, ok := s.workID(w, r)
	if !ok {
		return
	}
	var req SongMetaRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.SaveSongMeta(req.meta(id)); err != nil {
		s.respondServiceError(w, "save song metadata", err)
		return
	}
	meta, err := s.service.GetSongMeta(id)
	if err != nil {
		s.respondServiceError(w, "get song metadata", err)
		return
	}
	s.respondJSON(w, http.StatusOK, meta)
}

// handleWorkPipeline handles GET /api/works/{id}/pipeline
func (s *Server) handleWorkPipeline(w http.ResponseWriter, r *http.Request) {
	id, ok := s.workID(w, r)
	if !ok {
		return
	}
	result, err := s.service.SongPipeline(id)
	if err != nil {
		s.respondServiceError(w, "estimate work pipeline", err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// handleMatch handles POST /api/match
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	minConfidence := matching.DefaultSearchFloor
	if req.MinConfidence != nil {
		minConfidence = *req.MinConfidence
	}

	matches, err := s.service.MatchSong(r.Context(), req.song(), minConfidence)
	if err != nil {
		s.respondServiceError(w, "match song", err)
		return
	}
	if matches == nil {
		matches = []models.MatchResult{}
	}
	s.respondJSON(w, http.StatusOK, MatchResponse{Matches: matches, Count: len(matches)})
}

// handleBatchMatch handles POST /api/match/batch
func (s *Server) handleBatchMatch(w http.ResponseWriter, r *http.Request) {
	var req BatchMatchRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Songs) > BatchWarningThreshold {
		s.log.Warnf("Large batch match request: %d songs", len(req.Songs))
	}

	report, err := s.service.ReconcileStatement(r.Context(), req.Songs, req.MinConfidence)
	if err != nil {
		s.respondServiceError(w, "reconcile statement", err)
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

// handleCatalogPipeline handles GET /api/pipeline
func (s *Server) handleCatalogPipeline(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.CatalogPipeline(r.Context())
	if err != nil {
		s.respondServiceError(w, "estimate catalog pipeline", err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// handlePipelineConfig handles GET /api/pipeline/config
func (s *Server) handlePipelineConfig(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.service.PipelineConfig())
}

// handleEstimateSong handles POST /api/pipeline/song
func (s *Server) handleEstimateSong(w http.ResponseWriter, r *http.Request) {
	var req SongPipelineRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg, err := resolveConfig(s.service.PipelineConfig(), req.Config)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, pipeline.ComputeSongPipeline(req.Song, cfg))
}

// handleEstimateCatalog handles POST /api/pipeline/catalog
func (s *Server) handleEstimateCatalog(w http.ResponseWriter, r *http.Request) {
	var req CatalogPipelineRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg, err := resolveConfig(s.service.PipelineConfig(), req.Config)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, pipeline.ComputeCatalogPipeline(req.Songs, cfg))
}

// handleStatementPipeline handles POST /api/pipeline/statement
func (s *Server) handleStatementPipeline(w http.ResponseWriter, r *http.Request) {
	var req StatementPipelineRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.EstimateStatementPipeline(r.Context(), req.Songs, req.MinConfidence)
	if err != nil {
		s.respondServiceError(w, "estimate statement pipeline", err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}
