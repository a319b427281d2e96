// ABOUTME: Tests for call request payloads, persona sets, and report records
// ABOUTME: Covers voice_id omission rules, search filtering, and pending reports
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallRequestPayload(t *testing.T) {
	tests := []struct {
		name      string
		req       CallRequest
		wantVoice string
		hasVoice  bool
	}{
		{
			name:     "normal mode without voice",
			req:      CallRequest{Phone: "+15551234567", Name: "Jane Doe", Persona: "Agent Smith", Mode: ModeNormal},
			hasVoice: false,
		},
		{
			name:      "normal mode with voice",
			req:       CallRequest{Phone: "+15551234567", Name: "Jane Doe", Persona: "Agent Smith", Mode: ModeNormal, VoiceID: DefaultVoiceID},
			hasVoice:  true,
			wantVoice: DefaultVoiceID,
		},
		{
			name:      "voice is trimmed",
			req:       CallRequest{Phone: "+15551234567", Name: "Jane Doe", Persona: "Agent Smith", Mode: ModeNormal, VoiceID: "  v123  "},
			hasVoice:  true,
			wantVoice: "v123",
		},
		{
			name:     "whitespace voice treated as absent",
			req:      CallRequest{Phone: "+15551234567", Name: "Jane Doe", Persona: "Agent Smith", Mode: ModeNormal, VoiceID: "   "},
			hasVoice: false,
		},
		{
			name:     "impersonation never carries voice",
			req:      CallRequest{Phone: "+15551234567", Name: "Jane Doe", Persona: "Cloned CEO", Mode: ModeImpersonation, VoiceID: DefaultVoiceID},
			hasVoice: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := tt.req.Payload()
			voice, ok := payload["voice_id"]
			assert.Equal(t, tt.hasVoice, ok)
			if tt.hasVoice {
				assert.Equal(t, tt.wantVoice, voice)
			}
			assert.Equal(t, "+15551234567", payload["ph"])
			assert.Equal(t, "Jane Doe", payload["name"])
			assert.Equal(t, string(tt.req.Mode), payload["mode"])
		})
	}
}

func TestPersonaSetForMode(t *testing.T) {
	set := PersonaSet{
		Normal:        []string{"Agent Smith"},
		Impersonation: []string{"Cloned CEO"},
	}

	assert.Equal(t, []string{"Agent Smith"}, set.ForMode(ModeNormal))
	assert.Equal(t, []string{"Cloned CEO"}, set.ForMode(ModeImpersonation))
	assert.True(t, set.Contains(ModeNormal, "Agent Smith"))
	assert.False(t, set.Contains(ModeImpersonation, "Agent Smith"))
	assert.False(t, set.IsEmpty())
	assert.True(t, PersonaSet{}.IsEmpty())
}

func TestReportRecordPending(t *testing.T) {
	pending := ReportRecord{Report: ReportPendingSentinel}
	assert.True(t, pending.Pending())

	// Whitespace around the sentinel still counts as pending
	padded := ReportRecord{Report: "  " + ReportPendingSentinel + "\n"}
	assert.True(t, padded.Pending())

	real := ReportRecord{Report: "# Call Summary\n\nThe target did not disclose credentials."}
	assert.False(t, real.Pending())
}

func TestFilterCalls(t *testing.T) {
	calls := []CallRecord{
		{CallSid: "CA1", Name: "Jane Doe", Phone: "+15551234567"},
		{CallSid: "CA2", Name: "John Roe", Phone: "+442071234567"},
		{CallSid: "CA3", Name: "Priya Patel", Phone: "+919876543210"},
	}

	tests := []struct {
		name     string
		query    string
		wantSids []string
	}{
		{name: "blank returns all", query: "", wantSids: []string{"CA1", "CA2", "CA3"}},
		{name: "whitespace returns all", query: "   ", wantSids: []string{"CA1", "CA2", "CA3"}},
		{name: "name match case-insensitive", query: "JANE", wantSids: []string{"CA1"}},
		{name: "phone substring", query: "4420", wantSids: []string{"CA2"}},
		{name: "partial name", query: "oe", wantSids: []string{"CA1", "CA2"}},
		{name: "no match", query: "zzz", wantSids: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCalls(calls, tt.query)
			var sids []string
			for _, c := range got {
				sids = append(sids, c.CallSid)
			}
			assert.Equal(t, tt.wantSids, sids)
		})
	}
}
