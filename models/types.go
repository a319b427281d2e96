// ABOUTME: Data models for vishing simulation entities
// ABOUTME: Defines PersonaSet, CallRequest, CallRecord, and ReportRecord structs
package models

import "strings"

// Mode selects how the backend voices a call.
type Mode string

const (
	ModeNormal        Mode = "normal"
	ModeImpersonation Mode = "impersonation"
)

// DefaultVoiceID is the voice used for normal-mode calls unless overridden.
const DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// ReportPendingSentinel is the backend's placeholder report text for calls
// whose report has not been generated yet. It is never real report content.
const ReportPendingSentinel = "Report not found for the given CallSid"

// PersonaSet is an immutable snapshot of the personas the backend offers,
// split by mode. It is replaced wholesale on every fetch, never merged.
type PersonaSet struct {
	Normal        []string `json:"normal"`
	Impersonation []string `json:"impersonation"`
}

// ForMode returns the persona choices for the given mode.
func (p PersonaSet) ForMode(mode Mode) []string {
	if mode == ModeImpersonation {
		return p.Impersonation
	}
	return p.Normal
}

// Contains reports whether persona is offered for the given mode.
func (p PersonaSet) Contains(mode Mode, persona string) bool {
	for _, candidate := range p.ForMode(mode) {
		if candidate == persona {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no personas exist for either mode.
func (p PersonaSet) IsEmpty() bool {
	return len(p.Normal) == 0 && len(p.Impersonation) == 0
}

// CallRequest is the client-side form of a call placement. It is built fresh
// for each submission and never stored.
type CallRequest struct {
	Phone   string
	Name    string
	Persona string
	Mode    Mode
	VoiceID string
}

// Payload builds the wire body for POST /call. The voice_id key is included
// only for normal-mode calls with a non-blank voice ID.
func (r CallRequest) Payload() map[string]any {
	payload := map[string]any{
		"ph":      strings.TrimSpace(r.Phone),
		"name":    strings.TrimSpace(r.Name),
		"persona": r.Persona,
		"mode":    string(r.Mode),
	}
	if voice := strings.TrimSpace(r.VoiceID); r.Mode == ModeNormal && voice != "" {
		payload["voice_id"] = voice
	}
	return payload
}

// CallRecord is a placed call as reported by the backend. Records are
// fetched, never mutated locally.
type CallRecord struct {
	CallSid string `json:"callSid"`
	Name    string `json:"name"`
	Phone   string `json:"ph"`
	Mode    Mode   `json:"mode,omitempty"`
	Persona string `json:"persona,omitempty"`
	VoiceID string `json:"voice_id,omitempty"`

	// TimestampMillis is milliseconds since epoch; 0 means unknown.
	TimestampMillis int64 `json:"timestamp,omitempty"`
}

// ReportRecord is the post-call report for a single call SID.
type ReportRecord struct {
	Report     string `json:"report"`
	Transcript string `json:"transcript,omitempty"`
	Name       string `json:"name"`
	Phone      string `json:"ph"`
}

// Pending reports whether the backend has not generated this report yet.
// The backend signals this with a sentinel report body rather than an error.
func (r ReportRecord) Pending() bool {
	return strings.TrimSpace(r.Report) == ReportPendingSentinel
}

// FilterCalls returns the records whose name or phone contains query,
// case-insensitively. A blank query returns calls unchanged.
func FilterCalls(calls []CallRecord, query string) []CallRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return calls
	}

	var matched []CallRecord
	for _, call := range calls {
		if strings.Contains(strings.ToLower(call.Name), query) ||
			strings.Contains(strings.ToLower(call.Phone), query) {
			matched = append(matched, call)
		}
	}
	return matched
}
