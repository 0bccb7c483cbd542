package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, "general", c.DefaultSlug())
	assert.True(t, c.Valid("startups"))
	assert.True(t, c.Valid("  Housing "))
	assert.False(t, c.Valid("crypto"))
	assert.False(t, c.Valid(""))

	all := c.All()
	require.NotEmpty(t, all)
	assert.Equal(t, "general", all[0].Slug)

	all[0].Slug = "mutated"
	assert.Equal(t, "general", c.All()[0].Slug)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", "default: general\ntopics: []\n"},
		{"duplicate", "default: a\ntopics:\n  - slug: a\n  - slug: A\n"},
		{"missing default", "default: b\ntopics:\n  - slug: a\n"},
		{"blank slug", "default: a\ntopics:\n  - slug: a\n  - slug: ' '\n"},
		{"not yaml", "topics: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParse_LabelFallsBackToSlug(t *testing.T) {
	c, err := Parse([]byte("default: misc\ntopics:\n  - slug: Misc\n"))
	require.NoError(t, err)
	assert.Equal(t, []Topic{{Slug: "misc", Label: "misc"}}, c.All())
}
