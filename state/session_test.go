// ABOUTME: Tests for session state and the persona freshness window
// ABOUTME: Covers staleness, invalidation on URL change, and reset-to-default
package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harperreed/vishnet/models"
)

func testSet() models.PersonaSet {
	return models.PersonaSet{
		Normal:        []string{"Agent Smith"},
		Impersonation: []string{"Cloned CEO"},
	}
}

func TestPersonasFreshness(t *testing.T) {
	s := NewSession("https://sim.example.com")

	_, ok := s.Personas()
	assert.False(t, ok, "never-fetched snapshot is not fresh")

	s.StorePersonas(testSet())
	set, ok := s.Personas()
	assert.True(t, ok)
	assert.Equal(t, []string{"Agent Smith"}, set.Normal)

	// Age the snapshot past the freshness window
	s.personasFetched = time.Now().Add(-PersonaTTL - time.Second)
	set, ok = s.Personas()
	assert.False(t, ok, "aged snapshot should be stale")
	assert.Equal(t, []string{"Agent Smith"}, set.Normal, "stale data is still returned for rendering")
}

func TestInvalidatePersonas(t *testing.T) {
	s := NewSession("https://sim.example.com")
	s.StorePersonas(testSet())

	s.InvalidatePersonas()
	set, ok := s.Personas()
	assert.False(t, ok)
	assert.True(t, set.IsEmpty())
}

func TestSetBackendURLInvalidatesPersonas(t *testing.T) {
	s := NewSession("https://sim.example.com")
	s.StorePersonas(testSet())

	s.SetBackendURL("https://other.example.com")
	assert.Equal(t, "https://other.example.com", s.BackendURL())
	set, ok := s.Personas()
	assert.False(t, ok, "URL change must clear the cached snapshot")
	assert.True(t, set.IsEmpty())
}

func TestSetBackendURLNoopKeepsCache(t *testing.T) {
	s := NewSession("https://sim.example.com")
	s.StorePersonas(testSet())

	s.SetBackendURL("https://sim.example.com")
	_, ok := s.Personas()
	assert.True(t, ok, "setting the same URL should not invalidate")
}

func TestResetBackendURL(t *testing.T) {
	s := NewSession("https://sim.example.com")
	s.SetBackendURL("https://other.example.com")
	s.StorePersonas(testSet())

	got := s.ResetBackendURL()
	assert.Equal(t, "https://sim.example.com", got)
	assert.Equal(t, "https://sim.example.com", s.BackendURL())
	_, ok := s.Personas()
	assert.False(t, ok)
}

func TestModeAndSelection(t *testing.T) {
	s := NewSession("https://sim.example.com")
	assert.Equal(t, models.ModeNormal, s.Mode())

	s.SetMode(models.ModeImpersonation)
	assert.Equal(t, models.ModeImpersonation, s.Mode())

	assert.Empty(t, s.SelectedSid())
	s.SetSelectedSid("CA42")
	assert.Equal(t, "CA42", s.SelectedSid())
}
