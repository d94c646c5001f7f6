package workflow

// State is the furthest completed stage of the main analysis chain.
// The ordering of the constants is significant: every state at or after
// StateAnalyzed has an analysis result.
type State int

const (
	StateEmpty State = iota
	StateDocumentStaged
	StateAnalyzing
	StateAnalyzed
	StateResourcesPending
	StateResourcesReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDocumentStaged:
		return "document_staged"
	case StateAnalyzing:
		return "analyzing"
	case StateAnalyzed:
		return "analyzed"
	case StateResourcesPending:
		return "resources_pending"
	case StateResourcesReady:
		return "resources_ready"
	default:
		return "unknown"
	}
}

// ProfileState tracks the profile-search branch, which runs independently of
// resource retrieval once an analysis exists.
type ProfileState int

const (
	ProfilesIdle ProfileState = iota
	ProfilesPending
	ProfilesReady
)

func (s ProfileState) String() string {
	switch s {
	case ProfilesIdle:
		return "idle"
	case ProfilesPending:
		return "profiles_pending"
	case ProfilesReady:
		return "profiles_ready"
	default:
		return "unknown"
	}
}

// Stage names a unit of orchestrated work or a user-settable input.
type Stage string

const (
	StageDocument  Stage = "document"
	StageDomain    Stage = "domain"
	StageLocation  Stage = "location"
	StageSelection Stage = "selection"
	StageAnalysis  Stage = "analysis"
	StageResources Stage = "resources"
	StageProfiles  Stage = "profiles"
)
