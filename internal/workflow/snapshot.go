package workflow

import (
	"github.com/jonathan/gapmap/internal/gap"
	"github.com/jonathan/gapmap/internal/types"
)

// Snapshot is a point-in-time copy of the workflow state for presentation.
// Mutating it has no effect on the coordinator.
type Snapshot struct {
	SessionID    string        `json:"session_id"`
	State        State         `json:"state"`
	ProfileState ProfileState  `json:"profile_state"`
	Document     *DocumentInfo `json:"document,omitempty"`
	Domain       string        `json:"domain"`
	Location     string        `json:"location"`

	Analysis        *gap.Result `json:"analysis,omitempty"`
	MatchPercentage int         `json:"match_percentage"`
	Selection       []string    `json:"selection"`

	Resources      types.ResourceMap `json:"resources,omitempty"`
	ResourceSkills []string          `json:"resource_skills,omitempty"`
	Profiles       []types.Profile   `json:"profiles,omitempty"`

	CanAnalyze          bool `json:"can_analyze"`
	CanRequestResources bool `json:"can_request_resources"`
	CanRequestProfiles  bool `json:"can_request_profiles"`
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		SessionID:           c.id,
		State:               c.state,
		ProfileState:        c.profileState,
		Domain:              c.domain,
		Location:            c.location,
		Selection:           c.selection.Skills(),
		Resources:           c.resources.Clone(),
		ResourceSkills:      append([]string(nil), c.resourceSkills...),
		CanAnalyze:          c.canAnalyze(),
		CanRequestResources: c.canRequestResources(),
		CanRequestProfiles:  c.canRequestProfiles(),
	}
	if c.document != nil {
		info := c.document.Info()
		s.Document = &info
	}
	if c.analysis != nil {
		a := c.analysis.Clone()
		s.Analysis = &a
		s.MatchPercentage = a.MatchPercentage()
	}
	if c.profiles != nil {
		s.Profiles = append([]types.Profile{}, c.profiles...)
	}
	return s
}
