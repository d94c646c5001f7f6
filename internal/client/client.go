// Package client implements the workflow collaborators against the gapmap
// HTTP service. Every response is checked against its JSON Schema before it
// is decoded.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/jonathan/gapmap/internal/fetch"
	"github.com/jonathan/gapmap/internal/schemas"
	"github.com/jonathan/gapmap/internal/types"
	"github.com/jonathan/gapmap/internal/workflow"
	rootschemas "github.com/jonathan/gapmap/schemas"
)

// Endpoint paths of the collaborator service.
const (
	AnalyzePath   = "/analyze-resume"
	ResourcesPath = "/learning-resources"
	ProfilesPath  = "/linkedin-profiles"
)

// Error is a failed collaborator call. Message is the service's own error
// text when it sent one.
type Error struct {
	Endpoint   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Endpoint, e.Message, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Cause)
	default:
		return e.Endpoint + ": request failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to the collaborator service.
type Client struct {
	baseURL string
	opts    *fetch.Options
}

var (
	_ workflow.Extractor       = (*Client)(nil)
	_ workflow.ResourceFinder  = (*Client)(nil)
	_ workflow.ProfileSearcher = (*Client)(nil)
)

// New returns a client for the service at baseURL. A nil opts uses
// fetch.DefaultOptions.
func New(baseURL string, opts *fetch.Options) *Client {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), opts: opts}
}

// Collaborators returns c wired into every workflow collaborator slot.
func (c *Client) Collaborators() workflow.Collaborators {
	return workflow.Collaborators{Extractor: c, Resources: c, Profiles: c}
}

// Extract uploads the document and domain and returns the skill analysis.
func (c *Client) Extract(ctx context.Context, req workflow.ExtractionRequest) (*types.SkillAnalysis, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, fileName(req.Document)))
	header.Set("Content-Type", req.Document.MediaType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, &Error{Endpoint: AnalyzePath, Cause: err}
	}
	if _, err := part.Write(req.Document.Data()); err != nil {
		return nil, &Error{Endpoint: AnalyzePath, Cause: err}
	}
	if err := mw.WriteField("domain", req.Domain); err != nil {
		return nil, &Error{Endpoint: AnalyzePath, Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Endpoint: AnalyzePath, Cause: err}
	}

	var analysis types.SkillAnalysis
	if err := c.post(ctx, AnalyzePath, mw.FormDataContentType(), body.Bytes(), rootschemas.SkillAnalysis, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// FindResources requests learning resources for skills.
func (c *Client) FindResources(ctx context.Context, skills []string) (types.ResourceMap, error) {
	payload, err := json.Marshal(types.ResourcesRequest{Skills: skills})
	if err != nil {
		return nil, &Error{Endpoint: ResourcesPath, Cause: err}
	}

	var resources types.ResourceMap
	if err := c.post(ctx, ResourcesPath, "application/json", payload, rootschemas.LearningResources, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// SearchProfiles requests profiles for a domain and location.
func (c *Client) SearchProfiles(ctx context.Context, domain, location string) ([]types.Profile, error) {
	payload, err := json.Marshal(types.ProfilesRequest{Domain: domain, Location: location})
	if err != nil {
		return nil, &Error{Endpoint: ProfilesPath, Cause: err}
	}

	var profiles []types.Profile
	if err := c.post(ctx, ProfilesPath, "application/json", payload, rootschemas.Profiles, &profiles); err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []types.Profile{}
	}
	return profiles, nil
}

func (c *Client) post(ctx context.Context, path, contentType string, payload []byte, schema string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Endpoint: path, Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	result, err := fetch.Do(ctx, req, c.opts)
	if err != nil {
		var fetchErr *fetch.Error
		if result != nil && errors.As(err, &fetchErr) {
			return &Error{Endpoint: path, StatusCode: result.StatusCode, Message: serviceMessage(result.Body), Cause: err}
		}
		return &Error{Endpoint: path, Cause: err}
	}

	if err := schemas.Validate(schema, result.Body); err != nil {
		return &Error{Endpoint: path, StatusCode: result.StatusCode, Message: "unexpected response shape", Cause: err}
	}
	if err := json.Unmarshal(result.Body, out); err != nil {
		return &Error{Endpoint: path, StatusCode: result.StatusCode, Message: "invalid response body", Cause: err}
	}
	return nil
}

// serviceMessage extracts the "error" field of a failure body.
func serviceMessage(body []byte) string {
	var resp types.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error
}

func fileName(doc workflow.Document) string {
	if doc.Name != "" {
		return doc.Name
	}
	switch doc.MediaType {
	case workflow.MediaTypePDF:
		return "resume.pdf"
	case workflow.MediaTypeDOC:
		return "resume.doc"
	default:
		return "resume.docx"
	}
}
