package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetJobDescriptions retrieves the cached set for a domain, or nil if none exists.
func (db *DB) GetJobDescriptions(ctx context.Context, domain string) (*JobDescriptionSet, error) {
	var s JobDescriptionSet
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, domain, domain_normalized, descriptions, content_hash,
		        fetched_at, expires_at, created_at, updated_at
		 FROM job_descriptions WHERE domain_normalized = $1`,
		NormalizeDomain(domain),
	).Scan(&s.ID, &s.Domain, &s.DomainNormalized, &raw, &s.ContentHash,
		&s.FetchedAt, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job descriptions: %w", err)
	}
	if err := json.Unmarshal(raw, &s.Descriptions); err != nil {
		return nil, fmt.Errorf("failed to decode job descriptions: %w", err)
	}
	return &s, nil
}

// GetFreshJobDescriptions retrieves a cached set only if it's not expired
func (db *DB) GetFreshJobDescriptions(ctx context.Context, domain string) (*JobDescriptionSet, error) {
	s, err := db.GetJobDescriptions(ctx, domain)
	if err != nil || s == nil {
		return nil, err
	}
	if s.IsExpired() {
		return nil, nil // Expired, should re-fetch
	}

	_, _ = db.pool.Exec(ctx,
		"UPDATE job_descriptions SET last_accessed_at = NOW() WHERE id = $1",
		s.ID)

	return s, nil
}

// UpsertJobDescriptions stores the descriptions fetched for a domain with
// the given TTL. A zero ttl uses DefaultJobDescriptionCacheTTL.
func (db *DB) UpsertJobDescriptions(ctx context.Context, domain string, descriptions []string, ttl time.Duration) (*JobDescriptionSet, error) {
	if ttl <= 0 {
		ttl = DefaultJobDescriptionCacheTTL
	}
	raw, err := json.Marshal(descriptions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job descriptions: %w", err)
	}

	s := JobDescriptionSet{Descriptions: descriptions}
	expiresAt := time.Now().Add(ttl)
	err = db.pool.QueryRow(ctx,
		`INSERT INTO job_descriptions (id, domain, domain_normalized, descriptions, content_hash, fetched_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), $6)
		 ON CONFLICT (domain_normalized) DO UPDATE SET
		     domain = $2,
		     descriptions = $4,
		     content_hash = $5,
		     fetched_at = NOW(),
		     expires_at = $6,
		     updated_at = NOW()
		 RETURNING id, domain, domain_normalized, content_hash, fetched_at, expires_at, created_at, updated_at`,
		uuid.New(), domain, NormalizeDomain(domain), raw, HashJobContent(descriptions), expiresAt,
	).Scan(&s.ID, &s.Domain, &s.DomainNormalized, &s.ContentHash,
		&s.FetchedAt, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job descriptions: %w", err)
	}
	return &s, nil
}

// DeleteExpiredJobDescriptions removes expired sets and returns how many were deleted.
func (db *DB) DeleteExpiredJobDescriptions(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx, "DELETE FROM job_descriptions WHERE expires_at IS NULL OR expires_at < NOW()")
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired job descriptions: %w", err)
	}
	return tag.RowsAffected(), nil
}
