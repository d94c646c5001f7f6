//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectIdeas(t *testing.T) {
	text := `Project 1: Docker Compose Blog
What to build: A multi-container blog with a database and a reverse proxy.
Key Learning Outcomes: Compose files; networking; volumes

Project 2: Image Slimmer
What to build: A CLI that rebuilds images with multi-stage builds.
Key Learning Outcomes: layer caching; multi-stage builds; image scanning; CI`

	ideas := ParseProjectIdeas(text)
	require.Len(t, ideas, 2)

	assert.Equal(t, "Project 1: Docker Compose Blog", ideas[0].Title)
	assert.Equal(t, "A multi-container blog with a database and a reverse proxy.", ideas[0].WhatToBuild)
	assert.Equal(t, []string{"Compose files", "networking", "volumes"}, ideas[0].Outcomes)
	assert.Len(t, ideas[1].Outcomes, 4)
}

func TestParseProjectIdeas_SkipsMalformedParagraphs(t *testing.T) {
	text := "Intro line without structure\n\n" +
		"Project 1: Good\nWhat to build: thing\nKey Learning Outcomes: a; b\n\n" +
		"Project 2: Too short\nWhat to build: only two lines\n\n" +
		"Project 3: Too long\nline\nline\nline\n"

	ideas := ParseProjectIdeas(text)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Project 1: Good", ideas[0].Title)
}

func TestParseProjectIdeas_EmptyAndFallbackText(t *testing.T) {
	assert.Empty(t, ParseProjectIdeas(""))
	assert.Empty(t, ParseProjectIdeas("Failed to generate project suggestions"))
}

func TestParseProjectIdeas_HandlesCRLF(t *testing.T) {
	text := "Project 1: X\r\nWhat to build: Y\r\nKey Learning Outcomes: z\r\n\r\nnoise"
	ideas := ParseProjectIdeas(text)
	require.Len(t, ideas, 1)
	assert.Equal(t, []string{"z"}, ideas[0].Outcomes)
}

func TestResourceMap_Clone(t *testing.T) {
	m := ResourceMap{
		"Docker": {ProjectIdeas: "ideas", Repositories: []Repository{{Name: "a", URL: "u"}}},
	}
	c := m.Clone()
	c["Docker"].Repositories[0].Name = "changed"
	assert.Equal(t, "a", m["Docker"].Repositories[0].Name)

	var nilMap ResourceMap
	assert.Nil(t, nilMap.Clone())
}
