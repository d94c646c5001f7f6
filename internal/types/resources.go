//nolint:revive // types is a standard Go package name pattern
package types

// Repository is a code repository suggested for practicing a skill.
type Repository struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// LearningResource bundles the follow-up material for one skill.
type LearningResource struct {
	ProjectIdeas string       `json:"project_and_networking_ideas"`
	Repositories []Repository `json:"top_github_repositories"`
}

// ResourceMap maps a skill name to its learning resources.
type ResourceMap map[string]LearningResource

// Clone returns a copy that shares no slices with m.
func (m ResourceMap) Clone() ResourceMap {
	if m == nil {
		return nil
	}
	out := make(ResourceMap, len(m))
	for skill, res := range m {
		out[skill] = LearningResource{
			ProjectIdeas: res.ProjectIdeas,
			Repositories: append([]Repository(nil), res.Repositories...),
		}
	}
	return out
}
