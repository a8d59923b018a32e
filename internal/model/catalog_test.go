package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProfession(t *testing.T) {
	p, ok := FindProfession("  catering ")
	require.True(t, ok)
	assert.Equal(t, "Catering", p.Label)
	assert.True(t, p.HasService("Buffet Service"))
	assert.False(t, p.HasService("Drone Photography"))

	_, ok = FindProfession("Plumbing")
	assert.False(t, ok)
}

func TestCatalogLabels(t *testing.T) {
	labels := ProfessionLabels()
	require.Len(t, labels, 15)
	assert.Equal(t, []string{"Photography", "Catering", "Decoration"}, labels[:3])

	seen := map[string]bool{}
	for _, p := range Professions {
		assert.NotEmpty(t, p.Services, p.Label)
		labels := p.ServiceLabels()
		assert.Len(t, labels, len(p.Services))
		for _, s := range p.Services {
			assert.False(t, seen[p.ID+"/"+s.ID], "duplicate service id %s/%s", p.ID, s.ID)
			seen[p.ID+"/"+s.ID] = true
		}
	}
}
