package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gapmap/internal/types"
)

func TestProfiles_Search(t *testing.T) {
	source := &fakeProfiles{profiles: []types.Profile{
		{Title: "Alice - Data Scientist", Link: "https://linkedin.com/in/alice"},
	}}
	p := &Profiles{Source: source}

	got, err := p.Search(context.Background(), "Data Scientist", "Berlin")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, DefaultProfileLimit, source.limit)
}

func TestProfiles_RequiresDomainAndLocation(t *testing.T) {
	p := &Profiles{Source: &fakeProfiles{}}
	for _, args := range [][2]string{{"", "Berlin"}, {"Data Scientist", " "}} {
		_, err := p.Search(context.Background(), args[0], args[1])
		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, "Job title and location are required", inputErr.Message)
	}
}

func TestProfiles_SourceFailureYieldsEmptyList(t *testing.T) {
	p := &Profiles{Source: &fakeProfiles{err: errUpstream}, Limit: 2}
	got, err := p.Search(context.Background(), "Data Scientist", "Berlin")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProfiles_CancelledSearchReturnsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &Profiles{Source: &fakeProfiles{err: context.Canceled}}
	_, err := p.Search(ctx, "Data Scientist", "Berlin")
	assert.ErrorIs(t, err, context.Canceled)
}
