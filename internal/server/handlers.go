package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/gapmap/internal/types"
	"github.com/jonathan/gapmap/internal/workflow"
)

const (
	resumeField = "resume"
	domainField = "domain"
)

// handleAnalyzeResume accepts a multipart upload with a resume file and a
// target domain, and returns the skill analysis.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(resumeField)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No resume file provided")
		return
	}
	defer func() { _ = file.Close() }()

	domain := strings.TrimSpace(r.FormValue(domainField))
	if domain == "" {
		s.errorResponse(w, http.StatusBadRequest, "No domain provided")
		return
	}
	if header.Filename == "" {
		s.errorResponse(w, http.StatusBadRequest, "No file selected")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read file: "+err.Error())
		return
	}
	if int64(len(data)) > s.maxUploadBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	doc := workflow.NewDocument(header.Filename, data, "")
	if !workflow.IsAllowedMediaType(doc.MediaType) {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF, DOC, and DOCX files are allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	log.Printf("[analyze] %s (%s, %d bytes) for domain %q", doc.Name, doc.MediaType, doc.Size(), domain)
	analysis, err := s.services.Extraction.Analyze(ctx, doc.MediaType, doc.Data(), domain)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleLearningResources returns project ideas and repositories per skill.
func (s *Server) handleLearningResources(w http.ResponseWriter, r *http.Request) {
	var req types.ResourcesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.serviceError(w, r, validationError(err, "skills", "No skills provided"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	resources, err := s.services.Resources.Find(ctx, req.Skills)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resources)
}

// handleProfiles returns professional profiles for a domain and location.
func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	var req types.ProfilesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	req.Domain = strings.TrimSpace(req.Domain)
	req.Location = strings.TrimSpace(req.Location)
	if err := req.Validate(); err != nil {
		s.serviceError(w, r, validationError(err, "domain", "Job title and location are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	profiles, err := s.services.Profiles.Search(ctx, req.Domain, req.Location)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profiles)
}

// decodeJSON decodes the request body into v and writes a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// validationError converts validator failures into an ErrValidation with a
// stable client-facing message.
func validationError(err error, field, message string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		field = strings.ToLower(fieldErrs[0].Field())
	}
	return &ErrValidation{Field: field, Message: message}
}
