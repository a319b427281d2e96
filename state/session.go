// ABOUTME: In-memory session state for the operator console
// ABOUTME: Tracks backend URL, the persona snapshot with staleness, mode, and selection
package state

import (
	"sync"
	"time"

	"github.com/harperreed/vishnet/models"
)

// PersonaTTL is how long a fetched persona snapshot stays fresh before a
// caller should refetch.
var PersonaTTL = 30 * time.Second

// Session holds all mutable per-session state. Everything here is ephemeral
// and rebuilt on each program start; the backend owns durable state.
//
// The TUI runs fetches on tea.Cmd goroutines, so access is mutex-guarded
// even though mutations happen one user action at a time.
type Session struct {
	mu sync.Mutex

	defaultBackendURL string
	backendURL        string

	personas        models.PersonaSet
	personasFetched time.Time

	mode        models.Mode
	selectedSid string
}

// NewSession creates a session pointing at the given backend URL, which also
// becomes the session's reset-to-default target.
func NewSession(backendURL string) *Session {
	return &Session{
		defaultBackendURL: backendURL,
		backendURL:        backendURL,
		mode:              models.ModeNormal,
	}
}

// BackendURL returns the current backend base URL.
func (s *Session) BackendURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backendURL
}

// SetBackendURL switches the backend. Cached personas belong to the old
// backend, so switching always invalidates them.
func (s *Session) SetBackendURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if url == s.backendURL {
		return
	}
	s.backendURL = url
	s.personas = models.PersonaSet{}
	s.personasFetched = time.Time{}
}

// ResetBackendURL restores the default backend URL, invalidating cached
// personas if the URL actually changes.
func (s *Session) ResetBackendURL() string {
	s.SetBackendURL(s.defaultBackendURL)
	return s.defaultBackendURL
}

// Personas returns the cached snapshot and whether it is still fresh.
// A stale or never-fetched snapshot returns ok=false and the caller should
// refetch via the backend client.
func (s *Session) Personas() (models.PersonaSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.personasFetched.IsZero() || time.Since(s.personasFetched) > PersonaTTL {
		return s.personas, false
	}
	return s.personas, true
}

// CachedPersonas returns the snapshot regardless of freshness. The form
// renders from this; freshness only governs refetching.
func (s *Session) CachedPersonas() models.PersonaSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.personas
}

// StorePersonas replaces the snapshot wholesale and marks it fresh.
func (s *Session) StorePersonas(set models.PersonaSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.personas = set
	s.personasFetched = time.Now()
}

// InvalidatePersonas drops the snapshot so the next read refetches. Used for
// manual refresh and whenever the backend URL changes.
func (s *Session) InvalidatePersonas() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.personas = models.PersonaSet{}
	s.personasFetched = time.Time{}
}

// Mode returns the selected call mode.
func (s *Session) Mode() models.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode selects the call mode.
func (s *Session) SetMode(mode models.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// SelectedSid returns the currently selected call SID, or "".
func (s *Session) SelectedSid() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSid
}

// SetSelectedSid records the call the operator is inspecting.
func (s *Session) SetSelectedSid(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSid = sid
}
