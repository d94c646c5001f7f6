package workflow

import (
	"context"
	"sync"

	"github.com/jonathan/gapmap/internal/types"
)

// gate lets a test hold a fake collaborator call open. The call signals
// started, then waits for release. Cancellation is ignored on purpose so a
// late result can be delivered after an invalidating transition.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gate) wait() {
	if g == nil {
		return
	}
	g.started <- struct{}{}
	<-g.release
}

type fakeExtractor struct {
	mu       sync.Mutex
	calls    int
	requests []ExtractionRequest
	result   *types.SkillAnalysis
	err      error
	gate     *gate
	ctxErr   error
}

func (f *fakeExtractor) Extract(ctx context.Context, req ExtractionRequest) (*types.SkillAnalysis, error) {
	f.mu.Lock()
	f.calls++
	f.requests = append(f.requests, req)
	g, res, err := f.gate, f.result, f.err
	f.mu.Unlock()

	g.wait()

	f.mu.Lock()
	f.ctxErr = ctx.Err()
	f.mu.Unlock()
	return res, err
}

func (f *fakeExtractor) set(resume, job []string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = &types.SkillAnalysis{ResumeSkills: resume, JobSkills: job}
	f.err = err
}

type fakeResources struct {
	mu     sync.Mutex
	calls  int
	skills [][]string
	result types.ResourceMap
	err    error
	gate   *gate
}

func (f *fakeResources) FindResources(_ context.Context, skills []string) (types.ResourceMap, error) {
	f.mu.Lock()
	f.calls++
	f.skills = append(f.skills, skills)
	g, res, err := f.gate, f.result, f.err
	f.mu.Unlock()

	g.wait()
	return res, err
}

type fakeProfiles struct {
	mu     sync.Mutex
	calls  int
	result []types.Profile
	err    error
	gate   *gate
}

func (f *fakeProfiles) SearchProfiles(_ context.Context, _, _ string) ([]types.Profile, error) {
	f.mu.Lock()
	f.calls++
	g, res, err := f.gate, f.result, f.err
	f.mu.Unlock()

	g.wait()
	return res, err
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Notify(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) byKind(kind EventKind) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type harness struct {
	c         *Coordinator
	extractor *fakeExtractor
	resources *fakeResources
	profiles  *fakeProfiles
	sink      *recordingSink
}

func newHarness() *harness {
	h := &harness{
		extractor: &fakeExtractor{},
		resources: &fakeResources{},
		profiles:  &fakeProfiles{},
		sink:      &recordingSink{},
	}
	h.c = New(Collaborators{
		Extractor: h.extractor,
		Resources: h.resources,
		Profiles:  h.profiles,
	}, Options{Sink: h.sink})
	return h
}

func pdfDocument() Document {
	return NewDocument("resume.pdf", []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"), MediaTypePDF)
}

// analyzed drives h into StateAnalyzed with the given skills.
func (h *harness) analyzed(resume, job []string) error {
	if err := h.c.StageDocument(pdfDocument()); err != nil {
		return err
	}
	h.c.SetDomain("Data Scientist")
	h.extractor.set(resume, job, nil)
	return h.c.RequestAnalysis(context.Background())
}
