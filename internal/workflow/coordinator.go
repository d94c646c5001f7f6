// Package workflow sequences the skill-gap stages: document staging, skill
// extraction, gap computation, skill selection, resource retrieval and
// profile search. It owns all derived state and decides which stage is
// unlockable.
//
// Collaborator calls block the calling goroutine. The coordinator never holds
// its lock across a call; instead every stage captures a generation number at
// dispatch and a result is applied only if that generation is still current.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/gapmap/internal/gap"
	"github.com/jonathan/gapmap/internal/selection"
	"github.com/jonathan/gapmap/internal/types"
)

// Options configures a Coordinator.
type Options struct {
	// MaxDocumentBytes caps staged documents. Zero means DefaultMaxDocumentBytes.
	MaxDocumentBytes int64
	// Sink receives notifications. Nil discards them.
	Sink Sink
}

// Coordinator is the single-session workflow state machine.
type Coordinator struct {
	id       string
	collab   Collaborators
	sink     Sink
	maxBytes int64

	mu sync.Mutex

	document *Document
	domain   string
	location string

	analysis       *gap.Result
	selection      selection.Set
	resources      types.ResourceMap
	resourceSkills []string
	profiles       []types.Profile

	state        State
	profileState ProfileState

	// analysisGen changes whenever the inputs of an analysis change.
	// resourceGen additionally changes when the selection empties.
	// profileGen changes when the domain, location or document changes.
	analysisGen uint64
	resourceGen uint64
	profileGen  uint64

	inflight map[Stage]context.CancelFunc
	pending  []Event
}

// New creates a Coordinator in StateEmpty.
func New(collab Collaborators, opts Options) *Coordinator {
	sink := opts.Sink
	if sink == nil {
		sink = discardSink{}
	}
	maxBytes := opts.MaxDocumentBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDocumentBytes
	}
	return &Coordinator{
		id:       uuid.NewString(),
		collab:   collab,
		sink:     sink,
		maxBytes: maxBytes,
		inflight: make(map[Stage]context.CancelFunc),
	}
}

// ID returns the session identifier attached to every event.
func (c *Coordinator) ID() string { return c.id }

// State returns the current main-chain state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ProfileState returns the current profile-branch state.
func (c *Coordinator) ProfileState() ProfileState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profileState
}

// StageDocument accepts a resume. Replacing a document discards every
// derived entity.
func (c *Coordinator) StageDocument(doc Document) error {
	c.mu.Lock()
	if err := validateDocument(doc, c.maxBytes); err != nil {
		c.fail(StageDocument, err)
		c.unlockAndFlush()
		return err
	}

	staged := NewDocument(doc.Name, doc.data, doc.MediaType)
	c.document = &staged
	c.invalidateAll()
	c.emit(EventSuccess, StageDocument, fmt.Sprintf("%s (%.2f KB)", staged.Name, float64(staged.Size())/1024), nil)
	c.transition(StageDocument)
	c.unlockAndFlush()
	return nil
}

// SetDomain sets the target job title. A changed domain discards every
// derived entity; setting the same value again is a no-op. A blank domain
// clears it and blocks analysis until a new one is set.
func (c *Coordinator) SetDomain(domain string) {
	domain = strings.TrimSpace(domain)

	c.mu.Lock()
	if domain == c.domain {
		c.mu.Unlock()
		return
	}
	c.domain = domain
	c.invalidateAll()
	c.transition(StageDomain)
	c.unlockAndFlush()
}

// SetLocation sets the location used for profile search. A changed location
// discards the profile list only.
func (c *Coordinator) SetLocation(location string) {
	location = strings.TrimSpace(location)

	c.mu.Lock()
	if location == c.location {
		c.mu.Unlock()
		return
	}
	c.location = location
	c.invalidateProfiles()
	c.transition(StageLocation)
	c.unlockAndFlush()
}

// ToggleSkill adds or removes a missing skill from the selection. Emptying
// the selection discards the resource map.
func (c *Coordinator) ToggleSkill(skill string) error {
	c.mu.Lock()
	if c.analysis == nil || c.state < StateAnalyzed {
		err := &InputError{Field: StageSelection, Message: "analyze a resume before selecting skills"}
		c.fail(StageSelection, err)
		c.unlockAndFlush()
		return err
	}
	if !c.analysis.IsMissing(skill) {
		err := &InputError{Field: StageSelection, Message: fmt.Sprintf("%q is not a missing skill", skill)}
		c.fail(StageSelection, err)
		c.unlockAndFlush()
		return err
	}

	c.selection = c.selection.Toggle(skill)
	if c.selection.IsEmpty() {
		c.invalidateResources()
		c.state = StateAnalyzed
	}
	c.transition(StageSelection)
	c.unlockAndFlush()
	return nil
}

// RequestAnalysis runs the extraction stage for the staged document and
// domain. Starting an analysis discards the previous result, the selection
// and the resource map.
func (c *Coordinator) RequestAnalysis(ctx context.Context) error {
	c.mu.Lock()
	if c.busy(StageAnalysis) {
		c.mu.Unlock()
		return ErrStageBusy
	}
	if c.document == nil {
		err := &InputError{Field: StageDocument, Message: "please select a resume file"}
		c.fail(StageAnalysis, err)
		c.unlockAndFlush()
		return err
	}
	if c.domain == "" {
		err := &InputError{Field: StageDomain, Message: "please enter a job domain"}
		c.fail(StageAnalysis, err)
		c.unlockAndFlush()
		return err
	}

	c.invalidateAnalysis()
	c.state = StateAnalyzing
	gen := c.analysisGen
	req := ExtractionRequest{Document: *c.document, Domain: c.domain}
	callCtx := c.dispatch(ctx, StageAnalysis)
	c.transition(StageAnalysis)
	c.unlockAndFlush()

	resp, err := c.collab.Extractor.Extract(callCtx, req)

	c.mu.Lock()
	c.finish(StageAnalysis)
	if gen != c.analysisGen {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	if err == nil && resp == nil {
		err = fmt.Errorf("empty extraction response")
	}
	if err != nil {
		cerr := &CollaboratorError{Stage: StageAnalysis, Cause: err}
		c.state = StateDocumentStaged
		c.fail(StageAnalysis, cerr)
		c.transition(StageAnalysis)
		c.unlockAndFlush()
		return cerr
	}

	result := gap.Compute(resp.ResumeSkills, resp.JobSkills)
	c.analysis = &result
	c.selection = c.selection.Reconcile(result.MissingSkills)
	c.state = StateAnalyzed
	c.emit(EventSuccess, StageAnalysis, "Resume analyzed successfully", nil)
	c.transition(StageAnalysis)
	c.unlockAndFlush()
	return nil
}

// RequestResources retrieves learning resources for the current selection.
// On failure the previous resource map, if any, is kept.
func (c *Coordinator) RequestResources(ctx context.Context) error {
	c.mu.Lock()
	if c.busy(StageResources) {
		c.mu.Unlock()
		return ErrStageBusy
	}
	if c.analysis == nil || c.state < StateAnalyzed {
		err := &InputError{Field: StageAnalysis, Message: "analyze a resume first"}
		c.fail(StageResources, err)
		c.unlockAndFlush()
		return err
	}
	if !c.selection.IsValidAgainst(c.analysis.MissingSkills) {
		c.selection = c.selection.Reconcile(c.analysis.MissingSkills)
	}
	if c.selection.IsEmpty() {
		err := &InputError{Field: StageSelection, Message: "please select at least one skill"}
		c.fail(StageResources, err)
		c.unlockAndFlush()
		return err
	}

	c.state = StateResourcesPending
	gen := c.resourceGen
	skills := c.selection.Skills()
	callCtx := c.dispatch(ctx, StageResources)
	c.transition(StageResources)
	c.unlockAndFlush()

	resp, err := c.collab.Resources.FindResources(callCtx, skills)

	c.mu.Lock()
	c.finish(StageResources)
	if gen != c.resourceGen {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	if err != nil {
		cerr := &CollaboratorError{Stage: StageResources, Cause: err}
		c.state = StateAnalyzed
		c.emit(EventFailure, StageResources, "Failed to get learning resources", cerr)
		c.transition(StageResources)
		c.unlockAndFlush()
		return cerr
	}

	keyed := make(types.ResourceMap, len(skills))
	for _, skill := range skills {
		if res, ok := resp[skill]; ok {
			keyed[skill] = res
		}
	}
	c.resources = keyed.Clone()
	c.resourceSkills = skills
	c.state = StateResourcesReady
	c.emit(EventSuccess, StageResources, fmt.Sprintf("Learning resources ready for %d skills", len(keyed)), nil)
	c.transition(StageResources)
	c.unlockAndFlush()
	return nil
}

// RequestProfiles searches professional profiles for the current domain and
// location. It does not depend on the selection and may run while resources
// are being retrieved.
func (c *Coordinator) RequestProfiles(ctx context.Context) error {
	c.mu.Lock()
	if c.busy(StageProfiles) {
		c.mu.Unlock()
		return ErrStageBusy
	}
	if c.state < StateAnalyzed {
		err := &InputError{Field: StageAnalysis, Message: "analyze a resume first"}
		c.fail(StageProfiles, err)
		c.unlockAndFlush()
		return err
	}
	if c.domain == "" || c.location == "" {
		err := &InputError{Field: StageLocation, Message: "please enter both job domain and location"}
		c.fail(StageProfiles, err)
		c.unlockAndFlush()
		return err
	}

	prior := c.profileState
	c.profileState = ProfilesPending
	gen := c.profileGen
	domain, location := c.domain, c.location
	callCtx := c.dispatch(ctx, StageProfiles)
	c.transition(StageProfiles)
	c.unlockAndFlush()

	resp, err := c.collab.Profiles.SearchProfiles(callCtx, domain, location)

	c.mu.Lock()
	c.finish(StageProfiles)
	if gen != c.profileGen {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	if err != nil {
		cerr := &CollaboratorError{Stage: StageProfiles, Cause: err}
		c.profileState = prior
		c.emit(EventFailure, StageProfiles, "Failed to fetch LinkedIn profiles", cerr)
		c.transition(StageProfiles)
		c.unlockAndFlush()
		return cerr
	}

	c.profiles = append([]types.Profile{}, resp...)
	c.profileState = ProfilesReady
	c.emit(EventSuccess, StageProfiles, fmt.Sprintf("Found %d profiles", len(resp)), nil)
	c.transition(StageProfiles)
	c.unlockAndFlush()
	return nil
}

// CanAnalyze reports whether RequestAnalysis would dispatch a call.
func (c *Coordinator) CanAnalyze() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canAnalyze()
}

// CanRequestResources reports whether RequestResources would dispatch a call.
func (c *Coordinator) CanRequestResources() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canRequestResources()
}

// CanRequestProfiles reports whether RequestProfiles would dispatch a call.
func (c *Coordinator) CanRequestProfiles() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canRequestProfiles()
}

func (c *Coordinator) canAnalyze() bool {
	return c.document != nil && c.domain != "" && !c.busy(StageAnalysis)
}

func (c *Coordinator) canRequestResources() bool {
	return c.analysis != nil && c.state >= StateAnalyzed &&
		!c.selection.IsEmpty() && !c.busy(StageResources)
}

func (c *Coordinator) canRequestProfiles() bool {
	return c.state >= StateAnalyzed && c.domain != "" && c.location != "" &&
		!c.busy(StageProfiles)
}

// invalidateAll handles a new document or domain.
func (c *Coordinator) invalidateAll() {
	c.invalidateAnalysis()
	c.invalidateProfiles()
	if c.document != nil {
		c.state = StateDocumentStaged
	} else {
		c.state = StateEmpty
	}
}

// invalidateAnalysis drops the analysis and everything derived from it.
func (c *Coordinator) invalidateAnalysis() {
	c.analysisGen++
	c.analysis = nil
	c.selection = selection.New()
	c.cancel(StageAnalysis)
	c.invalidateResources()
}

func (c *Coordinator) invalidateResources() {
	c.resourceGen++
	c.resources = nil
	c.resourceSkills = nil
	c.cancel(StageResources)
}

func (c *Coordinator) invalidateProfiles() {
	c.profileGen++
	c.profiles = nil
	c.profileState = ProfilesIdle
	c.cancel(StageProfiles)
}

func (c *Coordinator) busy(stage Stage) bool {
	_, ok := c.inflight[stage]
	return ok
}

// dispatch marks stage as in flight and returns the context for its call.
func (c *Coordinator) dispatch(ctx context.Context, stage Stage) context.Context {
	callCtx, cancel := context.WithCancel(ctx)
	c.inflight[stage] = cancel
	return callCtx
}

// finish clears the in-flight marker once a call has returned.
func (c *Coordinator) finish(stage Stage) {
	if cancel, ok := c.inflight[stage]; ok {
		cancel()
		delete(c.inflight, stage)
	}
}

// cancel cancels an outstanding call without clearing its in-flight marker;
// the stage stays busy until the call returns.
func (c *Coordinator) cancel(stage Stage) {
	if cancel, ok := c.inflight[stage]; ok {
		cancel()
	}
}

func (c *Coordinator) fail(stage Stage, err error) {
	c.emit(EventFailure, stage, err.Error(), err)
}

func (c *Coordinator) transition(stage Stage) {
	c.emit(EventTransition, stage, "", nil)
}

func (c *Coordinator) emit(kind EventKind, stage Stage, message string, err error) {
	c.pending = append(c.pending, Event{
		SessionID:    c.id,
		Kind:         kind,
		Stage:        stage,
		State:        c.state,
		ProfileState: c.profileState,
		Message:      message,
		Err:          err,
	})
}

// unlockAndFlush releases the lock and delivers queued events outside it so
// a sink may call back into the coordinator.
func (c *Coordinator) unlockAndFlush() {
	events := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, e := range events {
		c.sink.Notify(e)
	}
}
