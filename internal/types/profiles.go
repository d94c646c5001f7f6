//nolint:revive // types is a standard Go package name pattern
package types

// Profile is a professional profile found for a domain and location.
type Profile struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
}
