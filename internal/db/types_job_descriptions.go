package db

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultJobDescriptionCacheTTL is how long before cached descriptions are considered stale
const DefaultJobDescriptionCacheTTL = 24 * time.Hour

// JobDescriptionSet is the cached search result for one job domain.
type JobDescriptionSet struct {
	ID               uuid.UUID  `json:"id"`
	Domain           string     `json:"domain"`
	DomainNormalized string     `json:"domain_normalized"`
	Descriptions     []string   `json:"descriptions"`
	ContentHash      string     `json:"content_hash"`
	FetchedAt        time.Time  `json:"fetched_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsFresh returns true if the set hasn't expired
func (s *JobDescriptionSet) IsFresh() bool {
	if s.ExpiresAt == nil {
		return false
	}
	return time.Now().Before(*s.ExpiresAt)
}

// IsExpired returns true if the set has expired
func (s *JobDescriptionSet) IsExpired() bool {
	return !s.IsFresh()
}

// HashJobContent computes a SHA256 hash of the descriptions in order.
func HashJobContent(descriptions []string) string {
	h := sha256.New()
	for _, d := range descriptions {
		h.Write([]byte(d))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeDomain lowercases a job domain and collapses whitespace so that
// "Data  Scientist" and "data scientist" share a cache entry.
func NormalizeDomain(domain string) string {
	return strings.Join(strings.Fields(strings.ToLower(domain)), " ")
}
