package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gapmap/internal/server/ratelimit"
	"github.com/jonathan/gapmap/internal/services"
	"github.com/jonathan/gapmap/internal/types"
)

type fakeExtractor struct {
	mediaType string
	data      []byte
	domain    string
	result    *types.SkillAnalysis
	err       error
}

func (f *fakeExtractor) Analyze(_ context.Context, mediaType string, data []byte, domain string) (*types.SkillAnalysis, error) {
	f.mediaType, f.data, f.domain = mediaType, data, domain
	return f.result, f.err
}

type fakeResources struct {
	skills []string
	result types.ResourceMap
	err    error
}

func (f *fakeResources) Find(_ context.Context, skills []string) (types.ResourceMap, error) {
	f.skills = skills
	return f.result, f.err
}

type fakeProfiles struct {
	domain, location string
	result           []types.Profile
	err              error
}

func (f *fakeProfiles) Search(_ context.Context, domain, location string) ([]types.Profile, error) {
	f.domain, f.location = domain, location
	return f.result, f.err
}

type fakeDB struct {
	err    error
	closed bool
}

func (f *fakeDB) Ping(context.Context) error { return f.err }
func (f *fakeDB) Close()                     { f.closed = true }

type testServer struct {
	*Server
	extractor *fakeExtractor
	resources *fakeResources
	profiles  *fakeProfiles
}

func newTestServer(t *testing.T, cfg Config) *testServer {
	t.Helper()
	ts := &testServer{
		extractor: &fakeExtractor{result: &types.SkillAnalysis{
			ResumeSkills: []string{"Python"},
			JobSkills:    []string{"Python", "Docker"},
		}},
		resources: &fakeResources{result: types.ResourceMap{
			"Docker": {ProjectIdeas: "Project 1: x", Repositories: []types.Repository{}},
		}},
		profiles: &fakeProfiles{result: []types.Profile{{Title: "Alice", Link: "https://linkedin.com/in/alice"}}},
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s, err := New(cfg, Services{Extraction: ts.extractor, Resources: ts.resources, Profiles: ts.profiles})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	ts.Server = s
	return ts
}

func multipartBody(t *testing.T, filename string, content []byte, domain string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if filename != "" || content != nil {
		part, err := mw.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if domain != "" {
		require.NoError(t, mw.WriteField("domain", domain))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestNew_RequiresServices(t *testing.T) {
	_, err := New(Config{}, Services{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotContains(t, resp, "database")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealthEndpoint_ReportsDatabase(t *testing.T) {
	database := &fakeDB{err: errors.New("down")}
	s := newTestServer(t, Config{DB: database})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unavailable", resp["database"])

	s.Close()
	assert.True(t, database.closed)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Config{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/learning-resources", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalyzeResume_Success(t *testing.T) {
	s := newTestServer(t, Config{})
	pdf := []byte("%PDF-1.4\n%test resume")
	body, contentType := multipartBody(t, "resume.pdf", pdf, " Data Scientist ")

	req := httptest.NewRequest(http.MethodPost, "/analyze-resume", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", s.extractor.mediaType)
	assert.Equal(t, pdf, s.extractor.data)
	assert.Equal(t, "Data Scientist", s.extractor.domain)

	var got types.SkillAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"Python", "Docker"}, got.JobSkills)
}

func TestAnalyzeResume_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		domain   string
		want     string
	}{
		{"no file", "", nil, "Data", "No resume file provided"},
		{"no domain", "resume.pdf", []byte("%PDF-1.4"), "", "No domain provided"},
		{"wrong type", "notes.txt", []byte("plain notes"), "Data", "Only PDF, DOC, and DOCX files are allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{})
			body, contentType := multipartBody(t, tt.filename, tt.content, tt.domain)

			req := httptest.NewRequest(http.MethodPost, "/analyze-resume", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decodeError(t, w))
		})
	}
}

func TestAnalyzeResume_TooLarge(t *testing.T) {
	s := newTestServer(t, Config{MaxUploadBytes: 16})
	body, contentType := multipartBody(t, "resume.pdf", append([]byte("%PDF-1.4"), make([]byte, 64)...), "Data")

	req := httptest.NewRequest(http.MethodPost, "/analyze-resume", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestAnalyzeResume_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"input", &services.InputError{Message: "No relevant sections found in resume"}, http.StatusBadRequest, "No relevant sections found in resume"},
		{"upstream", &services.UpstreamError{Op: "skill analysis", Cause: errors.New("quota")}, http.StatusBadGateway, "skill analysis failed: quota"},
		{"timeout", fmt.Errorf("analyze: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "analyze: context deadline exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{})
			s.extractor.err = tt.err
			body, contentType := multipartBody(t, "cv.docx", []byte("PK\x03\x04docx"), "Data")

			req := httptest.NewRequest(http.MethodPost, "/analyze-resume", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.want, decodeError(t, w))
		})
	}
}

func TestLearningResources(t *testing.T) {
	s := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/learning-resources", bytes.NewBufferString(`{"skills":["Docker"]}`))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Docker"}, s.resources.skills)

	var got types.ResourceMap
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Project 1: x", got["Docker"].ProjectIdeas)
}

func TestLearningResources_BadRequests(t *testing.T) {
	for _, body := range []string{`{"skills":[]}`, `{}`, `not json`} {
		s := newTestServer(t, Config{})
		req := httptest.NewRequest(http.MethodPost, "/learning-resources", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Nil(t, s.resources.skills)
	}
}

func TestLinkedInProfiles(t *testing.T) {
	s := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/linkedin-profiles", bytes.NewBufferString(`{"domain":" Data Scientist ","location":"Berlin"}`))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Data Scientist", s.profiles.domain)
	assert.Equal(t, "Berlin", s.profiles.location)

	var got []types.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestLinkedInProfiles_MissingLocation(t *testing.T) {
	s := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/linkedin-profiles", bytes.NewBufferString(`{"domain":"Data Scientist","location":"  "}`))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Job title and location are required", decodeError(t, w))
}

func TestRateLimit_StageEndpoint(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled: true,
		Default: ratelimit.Rule{Limit: 100, Window: time.Minute},
		Rules: []ratelimit.Rule{
			{Method: "POST", Path: ratelimit.ProfilesRoute, Limit: 1, Window: time.Hour, Burst: 1},
		},
	}})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/linkedin-profiles", bytes.NewBufferString(`{"domain":"D","location":"L"}`))
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.NotEmpty(t, decodeError(t, w))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ErrValidation{Field: "skills", Message: "required"}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", &services.InputError{Message: "x"}), http.StatusBadRequest},
		{&services.UpstreamError{Op: "jobs", Cause: errors.New("x")}, http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestErrValidation_Message(t *testing.T) {
	err := &ErrValidation{Field: "skills", Message: "No skills provided"}
	assert.Equal(t, "validation error: skills - No skills provided", err.Error())
	assert.Equal(t, "No skills provided", errorMessage(err))
}
